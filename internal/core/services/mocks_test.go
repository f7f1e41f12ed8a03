package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/export"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoiceID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) RecordDownload(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// MockSlotRepository is a mock type for the SlotRepositoryFacade interface
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) LoadSlot(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlotRepository) SaveSlot(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSlotRepository) DeleteSlot(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.InvoiceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockMailer is a mock type for the Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, mail ports.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

// MockLogoStore is a mock type for the LogoStore interface
type MockLogoStore struct {
	mock.Mock
}

func (m *MockLogoStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.Error(1)
}

// stubExporter records the documents it is asked to export. When gate is set, Run blocks
// until the gate is closed and signals started first.
type stubExporter struct {
	mu      sync.Mutex
	docs    []render.Document
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (s *stubExporter) Run(ctx context.Context, doc render.Document) (export.Result, error) {
	s.mu.Lock()
	s.docs = append(s.docs, doc)
	s.mu.Unlock()

	if s.gate != nil {
		close(s.started)
		<-s.gate
	}
	if s.err != nil {
		return export.Result{}, s.err
	}
	return export.Result{PDF: []byte("%PDF-1.3 stub"), Pages: 1, Filename: export.Filename(doc.Number)}, nil
}

func (s *stubExporter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// stepClock starts at a fixed instant and advances one minute per call.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(time.Minute)
	return now
}

// sequentialIDs returns "item-1", "item-2", ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

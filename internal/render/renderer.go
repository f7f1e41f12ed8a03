package render

import (
	"fmt"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
)

// TemplateRenderer turns InvoiceData into a Document. Implementations differ only in layout.
type TemplateRenderer interface {
	ID() domain.TemplateID
	Render(data InvoiceData) Document
}

// Registry resolves template ids to renderers.
type Registry struct {
	order     []domain.TemplateID
	renderers map[domain.TemplateID]TemplateRenderer
}

// NewRegistry registers the given renderers, or all five built-in templates when none are passed.
func NewRegistry(renderers ...TemplateRenderer) *Registry {
	if len(renderers) == 0 {
		renderers = []TemplateRenderer{
			ModernTemplate{},
			ClassicTemplate{},
			EnterpriseTemplate{},
			FreelancerTemplate{},
			CorporateTemplate{},
		}
	}
	r := &Registry{renderers: make(map[domain.TemplateID]TemplateRenderer, len(renderers))}
	for _, tr := range renderers {
		if _, exists := r.renderers[tr.ID()]; !exists {
			r.order = append(r.order, tr.ID())
		}
		r.renderers[tr.ID()] = tr
	}
	return r
}

// IDs returns the registered template ids in registration order.
func (r *Registry) IDs() []domain.TemplateID {
	return append([]domain.TemplateID(nil), r.order...)
}

// Get looks a renderer up by id, case-insensitively.
func (r *Registry) Get(id domain.TemplateID) (TemplateRenderer, error) {
	parsed, ok := domain.ParseTemplateID(string(id))
	if ok {
		if tr, found := r.renderers[parsed]; found {
			return tr, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownTemplate, id)
}

// Render renders data with the template registered under id.
func (r *Registry) Render(id domain.TemplateID, data InvoiceData) (Document, error) {
	tr, err := r.Get(id)
	if err != nil {
		return Document{}, err
	}
	return tr.Render(data), nil
}

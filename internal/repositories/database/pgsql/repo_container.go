package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres slot store. invoices is the backend of record and
// may be nil.
func NewRepositoryProvider(dbPool *pgxpool.Pool, invoices portsrepo.InvoiceRepositoryFacade) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SlotRepo:    newPgxSlotRepository(dbPool),
		InvoiceRepo: invoices,
	}
}

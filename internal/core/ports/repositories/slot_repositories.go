package repositories

import "context"

// Slot keys used by the wizard.
const (
	DraftSlotKey    = "invoice-draft"
	SettingsSlotKey = "invoice-settings"
)

// SlotReader defines read operations on the key-value slot store.
type SlotReader interface {
	// LoadSlot returns the raw serialized value stored under key.
	// It returns apperrors.ErrNotFound when the slot is empty.
	LoadSlot(ctx context.Context, key string) ([]byte, error)
}

// SlotWriter defines write operations on the key-value slot store.
type SlotWriter interface {
	// SaveSlot replaces the value stored under key.
	SaveSlot(ctx context.Context, key string, value []byte) error

	// DeleteSlot clears key. Deleting an empty slot is not an error.
	DeleteSlot(ctx context.Context, key string) error
}

// SlotRepositoryFacade combines all slot-store operations.
type SlotRepositoryFacade interface {
	SlotReader
	SlotWriter
}

package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_wizard/internal/repositories/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]portsrepo.SlotRepositoryFacade {
	fileStore, err := storage.NewFileStore(filepath.Join(t.TempDir(), "slots"))
	require.NoError(t, err)
	return map[string]portsrepo.SlotRepositoryFacade{
		"memory": storage.NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestSlotStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.LoadSlot(ctx, portsrepo.DraftSlotKey)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)

			require.NoError(t, store.SaveSlot(ctx, portsrepo.DraftSlotKey, []byte(`{"notes":"one"}`)))
			require.NoError(t, store.SaveSlot(ctx, portsrepo.DraftSlotKey, []byte(`{"notes":"two"}`)))

			value, err := store.LoadSlot(ctx, portsrepo.DraftSlotKey)
			require.NoError(t, err)
			assert.JSONEq(t, `{"notes":"two"}`, string(value))

			require.NoError(t, store.DeleteSlot(ctx, portsrepo.DraftSlotKey))
			require.NoError(t, store.DeleteSlot(ctx, portsrepo.DraftSlotKey), "deleting twice is fine")
			_, err = store.LoadSlot(ctx, portsrepo.DraftSlotKey)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestSlotStores_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SaveSlot(ctx, portsrepo.DraftSlotKey, []byte(`{"a":1}`)))
			require.NoError(t, store.SaveSlot(ctx, portsrepo.SettingsSlotKey, []byte(`{"b":2}`)))

			draft, err := store.LoadSlot(ctx, portsrepo.DraftSlotKey)
			require.NoError(t, err)
			settings, err := store.LoadSlot(ctx, portsrepo.SettingsSlotKey)
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(draft))
			assert.JSONEq(t, `{"b":2}`, string(settings))
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	value := []byte(`{"a":1}`)
	require.NoError(t, store.SaveSlot(ctx, "k", value))
	value[2] = 'z'

	got, err := store.LoadSlot(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SaveSlot(ctx, portsrepo.SettingsSlotKey, []byte(`{"invoicePrefix":"ACME-"}`)))

	second, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	value, err := second.LoadSlot(ctx, portsrepo.SettingsSlotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoicePrefix":"ACME-"}`, string(value))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = store.SaveSlot(context.Background(), "../escape", []byte(`{}`))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

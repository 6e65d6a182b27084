package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

// DefaultKey is the slot key the collection is stored under.
const DefaultKey = "income_expense_entries_v1"

// ErrSlotEmpty is returned by a Slot when nothing is stored under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single-value key-value backend.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// SlotStore implements usecase.EntryStorage on top of a Slot.
type SlotStore struct {
	slot    Slot
	key     string
	decoder Decoder
	logger  zerolog.Logger
}

// NewSlotStore creates a new SlotStore. idGen supplies replacement ids for
// stored records whose id is missing or duplicated.
func NewSlotStore(slot Slot, key string, idGen usecase.IDGenerator, logger zerolog.Logger) *SlotStore {
	if key == "" {
		key = DefaultKey
	}

	return &SlotStore{
		slot: slot,
		key:  key,
		decoder: Decoder{
			NewID: idGen.Generate,
			Now:   time.Now,
		},
		logger: logger.With().Str("component", "slot_store").Str("key", key).Logger(),
	}
}

// Load reads the collection. Absent, malformed or unreadable data yields an empty
// collection.
func (s *SlotStore) Load(ctx context.Context) []domain.Entry {
	payload, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		s.logger.Debug().Msg("slot empty, starting with no entries")
		return []domain.Entry{}
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read slot, starting with no entries")
		return []domain.Entry{}
	}

	entries, coercions, err := s.decoder.Decode(payload)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stored entries malformed, starting with no entries")
		return []domain.Entry{}
	}

	for _, c := range coercions {
		s.logger.Debug().Int("index", c.Index).Str("field", c.Field).Msg("stored field defaulted")
	}

	s.logger.Debug().Int("count", len(entries)).Msg("entries loaded")

	return entries
}

// Save overwrites the slot with the whole collection.
func (s *SlotStore) Save(ctx context.Context, entries []domain.Entry) error {
	payload, err := EncodeEntries(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}

	if err := s.slot.Set(ctx, s.key, payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to write slot")
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}

	return nil
}

// MemorySlot keeps values in process memory.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemorySlot) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *MemorySlot) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

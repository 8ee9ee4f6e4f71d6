package cipherwatch

import (
	"sync"
	"time"
)

// RecordStore holds every submitted record and its alert, keyed by a
// monotonically increasing identifier starting at 1. Identifier 0 is
// reserved and never allocated. Records are never deleted.
type RecordStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*Record
	alerts  map[int64]*Alert
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[int64]*Record),
		alerts:  make(map[int64]*Alert),
	}
}

// Create allocates the next identifier, stores a record with HighRisk unset,
// and creates the matching empty alert. The counter advances by exactly one
// per call and identifiers are never reused.
func (s *RecordStore) Create(content, score SealedValue, now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.records[id] = &Record{
		ID:        id,
		Content:   content,
		Score:     score,
		CreatedAt: now,
	}
	s.alerts[id] = &Alert{RecordID: id}
	return id
}

// Get returns a copy of the record, or ErrNotFound if the identifier was
// never allocated.
func (s *RecordStore) Get(id int64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return *rec, nil
}

// MarkHighRisk sets the record's risk flag. Idempotent.
func (s *RecordStore) MarkHighRisk(id int64, highRisk bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.HighRisk = highRisk
	return nil
}

// Alert returns a copy of the record's alert, or ErrNotFound.
func (s *RecordStore) Alert(id int64) (Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.alerts[id]
	if !ok {
		return Alert{}, ErrNotFound
	}
	return *a, nil
}

// SetAlertContent writes the revealed content and flips Revealed. The
// transition happens at most once per record: a second call fails with
// ErrAlreadyRevealed and leaves the stored content untouched.
func (s *RecordStore) SetAlertContent(id int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return ErrNotFound
	}
	if a.Revealed {
		return ErrAlreadyRevealed
	}
	a.Content = content
	a.Revealed = true
	return nil
}

// Len returns the number of records ever created.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

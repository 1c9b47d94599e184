// Package history records diff actions in an append-only log with
// synchronous change notification and JSONL persistence.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action classifies a history record.
type Action string

// Recorded actions.
const (
	ActionComputed   Action = "computed"
	ActionApplied    Action = "applied"
	ActionConflicted Action = "conflicted"
)

// Record is one logged action.
type Record struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	OldLabel  string    `json:"old_label"`
	NewLabel  string    `json:"new_label"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
	Unchanged int       `json:"unchanged"`
	Patch     string    `json:"patch,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is an append-only record log. Observers registered with Subscribe
// are invoked synchronously after each append. A Store with an empty path
// keeps records in memory only.
type Store struct {
	path string

	mu        sync.Mutex
	records   []Record
	observers map[int]func(Record)
	nextObs   int
}

// NewStore opens a store backed by the JSONL file at path, loading any
// existing records. An empty path yields an in-memory store.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, observers: make(map[int]func(Record))}
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Grow the buffer beyond the 64KB default so records with large
	// patches survive.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing history line %d: %w", lineNum, err)
		}
		s.records = append(s.records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return s, nil
}

// Append stores the record, persists it when the store is file-backed, and
// notifies observers. A missing ID or timestamp is filled in; the stored
// record is returned.
func (s *Store) Append(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	if s.path != "" {
		if err := s.appendToFile(rec); err != nil {
			s.mu.Unlock()
			return Record{}, err
		}
	}
	s.records = append(s.records, rec)
	observers := make([]func(Record), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	// Observers run outside the lock so they can call back into the store.
	for _, fn := range observers {
		fn(rec)
	}
	return rec, nil
}

func (s *Store) appendToFile(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding history record: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// All returns a copy of the records in append order.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Subscribe registers fn to run synchronously after every append. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Record)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

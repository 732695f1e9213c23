// Package state persists the full listing set between runs. The snapshot is
// the next run's diff baseline: loaded once at start, replaced wholesale at
// the end.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gofrs/flock"

	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
)

type Store struct {
	path string
	lock *flock.Flock
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// TryLock guards the whole run. Two monitors racing on the same snapshot file
// would produce duplicate notifications or lose updates, so the second one
// should just bow out.
func (s *Store) TryLock() (bool, error) {
	return s.lock.TryLock()
}

func (s *Store) Unlock() {
	if err := s.lock.Unlock(); err != nil {
		log.Printf("[state] unlock: %v", err)
	}
}

// Load returns the previous run's listing set. A missing or unreadable file
// degrades to "no prior state": every current listing will then be reported
// as new, which is the intended bootstrap behavior.
func (s *Store) Load() []domain.Listing {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[state] read %s: %v (starting with empty state)", s.path, err)
		}
		return nil
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		log.Printf("[state] parse %s: %v (starting with empty state)", s.path, err)
		return nil
	}
	return listings
}

// Save overwrites the snapshot with the current run's full listing set.
func (s *Store) Save(listings []domain.Listing) error {
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("state marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("state write %s: %w", s.path, err)
	}
	log.Printf("[state] saved %d listings to %s", len(listings), s.path)
	return nil
}

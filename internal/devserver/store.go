package devserver

import (
	"errors"
	"sort"
	"sync"

	"github.com/muurk/custdesk/internal/customer"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("customer not found")
	// ErrExists is returned when adding a record whose id is taken
	ErrExists = errors.New("customer already exists")
)

// Store is an in-memory customer table keyed by id.
type Store struct {
	mu     sync.RWMutex
	rows   map[int64]customer.Customer
	nextID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		rows:   make(map[int64]customer.Customer),
		nextID: 1,
	}
}

// List returns every record ordered by id.
func (s *Store) List() []customer.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]customer.Customer, 0, len(s.rows))
	for _, c := range s.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a record by id.
func (s *Store) Get(id int64) (customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	if !ok {
		return customer.Customer{}, ErrNotFound
	}
	return c, nil
}

// Add inserts a record. A zero id is assigned the next free id.
func (s *Store) Add(c customer.Customer) (customer.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		for {
			if _, taken := s.rows[s.nextID]; !taken {
				break
			}
			s.nextID++
		}
		c.ID = s.nextID
	}
	if _, exists := s.rows[c.ID]; exists {
		return customer.Customer{}, ErrExists
	}

	s.rows[c.ID] = c
	if c.ID >= s.nextID {
		s.nextID = c.ID + 1
	}
	return c, nil
}

// Update replaces an existing record.
func (s *Store) Update(c customer.Customer) (customer.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[c.ID]; !ok {
		return customer.Customer{}, ErrNotFound
	}
	s.rows[c.ID] = c
	return c, nil
}

// Delete removes a record.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Seed inserts a few sample records for demos.
func (s *Store) Seed() {
	samples := []customer.Customer{
		{ID: 1, Name: "Ana Souza", Email: "ana@example.com", Contact: "555-0101", Gender: customer.GenderFemale, Address: "12 Harbour Rd"},
		{ID: 2, Name: "Ben Okafor", Email: "ben@example.com", Contact: "555-0102", Gender: customer.GenderMale, Address: "4 Mill Lane"},
		{ID: 3, Name: "Chen Li", Email: "chen@example.com", Contact: "555-0103", Gender: customer.GenderFemale, Address: "88 Station St"},
	}
	for _, c := range samples {
		_, _ = s.Add(c)
	}
}

package lobby

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
)

// Manager manages tables by id.
type Manager struct {
	mu     sync.Mutex
	tables map[string]*Table
}

func NewManager() *Manager {
	return &Manager{tables: make(map[string]*Table)}
}

// Create creates a new table and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	for m.tables[id] != nil {
		id = generateID()
	}
	m.tables[id] = NewTable(id)
	return id
}

// Get returns a table by ID.
func (m *Manager) Get(id string) *Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[id]
}

// Remove forgets a table.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, id)
}

// IDs lists known table ids in sorted order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.tables))
	for id := range m.tables {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func generateID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

package strategy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// QTable maps state keys to per-action values. It is safe for concurrent
// use and is shared by every Q-learning instance in a process.
type QTable struct {
	mu     sync.RWMutex
	values map[string]map[int]float64
}

// NewQTable creates an empty table
func NewQTable() *QTable {
	return &QTable{values: make(map[string]map[int]float64)}
}

// LoadQTableFile reads a JSON table of the form {"X___O____": {"2": 0.5}}
func LoadQTableFile(path string) (*QTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open q-table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t := NewQTable()
	if err := t.Load(f); err != nil {
		return nil, err
	}
	return t, nil
}

// Load merges JSON-encoded values into the table
func (t *QTable) Load(r io.Reader) error {
	var values map[string]map[int]float64
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return fmt.Errorf("failed to decode q-table: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for state, actions := range values {
		if t.values[state] == nil {
			t.values[state] = make(map[int]float64, len(actions))
		}
		for action, v := range actions {
			t.values[state][action] = v
		}
	}
	return nil
}

// Dump writes the table as JSON
func (t *QTable) Dump(w io.Writer) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return json.NewEncoder(w).Encode(t.values)
}

// Value returns Q(state, action), 0 if unseen
func (t *QTable) Value(state string, action int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values[state][action]
}

// Set stores Q(state, action)
func (t *QTable) Set(state string, action int, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.values[state] == nil {
		t.values[state] = make(map[int]float64)
	}
	t.values[state][action] = v
}

// HasState returns true if any action value is stored for state
func (t *QTable) HasState(state string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values[state]) > 0
}

// Len returns the number of states with stored values
func (t *QTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

package ui

import "sync"

// Modal is the view model for a named overlay dialog
type Modal struct {
	ID      string
	Title   string
	Body    string
	Footer  string
	Visible bool
}

// ModalSet tracks show/hide state per named modal. There is no backing data
// beyond visibility.
type ModalSet struct {
	mu   sync.Mutex
	open map[string]bool
}

func NewModalSet() *ModalSet {
	return &ModalSet{open: make(map[string]bool)}
}

func (m *ModalSet) Show(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[id] = true
}

func (m *ModalSet) Hide(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.open, id)
}

// Close is an alias for Hide
func (m *ModalSet) Close(id string) {
	m.Hide(id)
}

func (m *ModalSet) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[id]
}

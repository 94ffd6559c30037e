package history

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Entry is the best candidate of one generation
type Entry struct {
	Generation int     `json:"generation"`
	Text       string  `json:"text"`
	Fitness    float64 `json:"fitness"`
}

// History keeps the most recent best-of-generation entries, newest first
type History struct {
	target   string
	capacity int
	entries  []Entry
}

// file is the on-disk format
type file struct {
	Target   string  `json:"target"`
	Capacity int     `json:"capacity"`
	Entries  []Entry `json:"entries"`
}

// New creates an empty history holding at most capacity entries
func New(target string, capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		target:   target,
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Target returns the text the run evolved toward
func (h *History) Target() string {
	return h.target
}

// Record prepends an entry, dropping the oldest once the history is full
func (h *History) Record(generation int, text string, fitness float64) {
	if len(h.entries) == h.capacity {
		h.entries = h.entries[:h.capacity-1]
	}
	h.entries = append(h.entries, Entry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = Entry{Generation: generation, Text: text, Fitness: fitness}
}

// Entries returns a copy of the entries, newest first
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Latest returns the newest entry
func (h *History) Latest() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[0], true
}

// Len returns the number of stored entries
func (h *History) Len() int {
	return len(h.entries)
}

// Save writes the history to a file
func (h *History) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(file{
		Target:   h.target,
		Capacity: h.capacity,
		Entries:  h.entries,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load loads a history from a file
func Load(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	h := New(f.Target, f.Capacity)
	if len(f.Entries) > h.capacity {
		f.Entries = f.Entries[:h.capacity]
	}
	h.entries = append(h.entries, f.Entries...)
	return h, nil
}

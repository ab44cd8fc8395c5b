package router

import (
	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// StackEntry records one navigation: the screen shown, the screen it replaced
// and the transition used to get there.
type StackEntry struct {
	Current Screen
	// Handle is the live screen, zero or stale once it has been destroyed.
	Handle widget.Handle
	Prev   Screen
	// PrevAlive is the replaced screen when it was kept alive.
	PrevAlive  widget.Handle
	Transition display.Transition
}

// Stack is a fixed-depth navigation history. Push fails instead of growing.
type Stack struct {
	entries []StackEntry
	depth   int
}

// NewStack creates an empty stack holding at most depth entries.
func NewStack(depth int) *Stack {
	return &Stack{
		entries: make([]StackEntry, 0, depth),
		depth:   depth,
	}
}

// Push adds a new entry to the top of the stack.
func (s *Stack) Push(e StackEntry) error {
	if s.IsFull() {
		return ErrStackFull
	}
	s.entries = append(s.entries, e)
	return nil
}

// Pop removes and returns the top entry. Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	return s.PeekBy(0)
}

// PeekBy returns the entry step positions below the top, nil when the stack
// is not that deep.
func (s *Stack) PeekBy(step int) *StackEntry {
	i := len(s.entries) - 1 - step
	if step < 0 || i < 0 {
		return nil
	}
	return &s.entries[i]
}

// Bottom returns the oldest entry.
func (s *Stack) Bottom() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[0]
}

// Search returns the index of the lowest entry showing id, or -1.
func (s *Stack) Search(id Screen) int {
	for i := range s.entries {
		if s.entries[i].Current == id {
			return i
		}
	}
	return -1
}

// truncate drops every entry from index i upwards and returns them, top
// first.
func (s *Stack) truncate(i int) []StackEntry {
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	dropped := make([]StackEntry, 0, len(s.entries)-i)
	for j := len(s.entries) - 1; j >= i; j-- {
		dropped = append(dropped, s.entries[j])
	}
	clear(s.entries[i:])
	s.entries = s.entries[:i]
	return dropped
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) IsFull() bool {
	return len(s.entries) >= s.depth
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Depth returns the maximum number of entries.
func (s *Stack) Depth() int {
	return s.depth
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

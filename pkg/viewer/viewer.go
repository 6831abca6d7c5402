// Package viewer holds the position of the displayed artwork and its transitions.
//
// A State lives as long as the screen showing it: it is created when the
// screen is mounted and dropped when the screen goes away. Nothing persists it.
package viewer

import "art-space/pkg/models"

// Next returns the position after position in a catalog of n entries
func Next(position, n int) int {
	if n <= 0 {
		return 0
	}
	return (position + 1) % n
}

// Previous returns the position before position in a catalog of n entries
func Previous(position, n int) int {
	if n <= 0 {
		return 0
	}
	return (position - 1 + n) % n
}

// State is the transient position of one viewer
type State struct {
	position int
	size     int
}

// NewState creates a state at position 0 for a catalog of size entries
func NewState(size int) *State {
	return &State{size: size}
}

// Position returns the current position
func (s *State) Position() int {
	return s.position
}

// Size returns the catalog size the state wraps around
func (s *State) Size() int {
	return s.size
}

// Next advances the position, wrapping to 0 after the last entry
func (s *State) Next() int {
	s.position = Next(s.position, s.size)
	return s.position
}

// Previous moves the position back, wrapping to the last entry before 0
func (s *State) Previous() int {
	s.position = Previous(s.position, s.size)
	return s.position
}

// Reset returns to the first entry
func (s *State) Reset() {
	s.position = 0
}

// Set jumps to position, clamped to the catalog bounds
func (s *State) Set(position int) int {
	switch {
	case s.size <= 0 || position < 0:
		s.position = 0
	case position >= s.size:
		s.position = s.size - 1
	default:
		s.position = position
	}
	return s.position
}

// Source is what a Viewer reads artworks from
type Source interface {
	Len() int
	At(position int) (models.Artwork, error)
}

// Viewer binds a State to a catalog
type Viewer struct {
	source Source
	state  *State
}

// New creates a viewer showing the first entry of source
func New(source Source) *Viewer {
	return &Viewer{source: source, state: NewState(source.Len())}
}

// State exposes the underlying position holder
func (v *Viewer) State() *State {
	return v.state
}

// Current returns the artwork at the current position
func (v *Viewer) Current() (models.Artwork, error) {
	return v.source.At(v.state.Position())
}

// Next advances and returns the artwork now shown
func (v *Viewer) Next() (models.Artwork, error) {
	v.state.Next()
	return v.Current()
}

// Previous goes back and returns the artwork now shown
func (v *Viewer) Previous() (models.Artwork, error) {
	v.state.Previous()
	return v.Current()
}

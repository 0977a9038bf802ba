// Package profile holds the in-memory sync profiles: one source file and an
// ordered list of destination directories per profile.
package profile

import (
	"fmt"
	"slices"
	"sync"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
)

// MaxProfiles is the number of independent profiles the engine manages.
const MaxProfiles = 3

// Snapshot is an immutable copy of a profile taken for a sync pass or for persistence.
type Snapshot struct {
	Source       string
	Destinations []string
}

// Profile is one source-to-many-destinations configuration.
// Paths are not validated on mutation; existence is checked at sync time.
type Profile struct {
	mu           sync.RWMutex
	source       string
	destinations []string
}

// New creates a profile from a snapshot.
func New(s Snapshot) *Profile {
	p := &Profile{}
	p.Replace(s)
	return p
}

func (p *Profile) SetSource(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = path
}

// AddDestination appends a destination directory. Duplicates are allowed.
func (p *Profile) AddDestination(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destinations = append(p.destinations, path)
}

// RemoveDestination removes the destination at index, keeping the order of the rest.
func (p *Profile) RemoveDestination(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.destinations) {
		return ferrors.ValidationFailed("index",
			fmt.Sprintf("destination index %d out of range (0..%d)", index, len(p.destinations)-1))
	}
	p.destinations = slices.Delete(p.destinations, index, index+1)
	return nil
}

func (p *Profile) Source() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// Destinations returns a copy of the destination list.
func (p *Profile) Destinations() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.destinations)
}

// Snapshot returns a copy safe to use while the profile keeps changing.
func (p *Profile) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{Source: p.source, Destinations: slices.Clone(p.destinations)}
}

// Replace overwrites the profile with s. Used when state is loaded from disk.
func (p *Profile) Replace(s Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = s.Source
	p.destinations = slices.Clone(s.Destinations)
}

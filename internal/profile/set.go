package profile

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
)

// Set maps 1-based profile ids to profiles. Its length is fixed at construction.
type Set struct {
	profiles []*Profile
}

// ClampCount bounds a configured profile count to 1..MaxProfiles.
func ClampCount(n int) int {
	return max(1, min(n, MaxProfiles))
}

// NewSet creates n empty profiles, n clamped to 1..MaxProfiles.
func NewSet(n int) *Set {
	n = ClampCount(n)
	s := &Set{profiles: make([]*Profile, n)}
	for i := range s.profiles {
		s.profiles[i] = &Profile{}
	}
	return s
}

// NewSetFrom builds a set from snapshots; extra snapshots beyond n are dropped.
func NewSetFrom(n int, snaps []Snapshot) *Set {
	s := NewSet(n)
	for i, p := range s.profiles {
		if i < len(snaps) {
			p.Replace(snaps[i])
		}
	}
	return s
}

func (s *Set) Len() int { return len(s.profiles) }

// Get returns the profile with the given 1-based id.
func (s *Set) Get(id int) (*Profile, error) {
	if id < 1 || id > len(s.profiles) {
		return nil, ferrors.ValidationFailed("profile",
			fmt.Sprintf("profile %d does not exist (1..%d)", id, len(s.profiles)))
	}
	return s.profiles[id-1], nil
}

// Each calls fn for every profile in id order.
func (s *Set) Each(fn func(id int, p *Profile)) {
	for i, p := range s.profiles {
		fn(i+1, p)
	}
}

// Snapshots returns snapshots of all profiles in id order.
func (s *Set) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.profiles))
	for i, p := range s.profiles {
		out[i] = p.Snapshot()
	}
	return out
}

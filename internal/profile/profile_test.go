package profile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
)

func TestProfile_Mutations(t *testing.T) {
	p := &Profile{}
	assert.Empty(t, p.Source())
	assert.Empty(t, p.Destinations())

	p.SetSource("/data/a.txt")
	p.AddDestination("/backup/one")
	p.AddDestination("/backup/two")
	p.AddDestination("/backup/one")

	assert.Equal(t, "/data/a.txt", p.Source())
	assert.Equal(t, []string{"/backup/one", "/backup/two", "/backup/one"}, p.Destinations())

	require.NoError(t, p.RemoveDestination(1))
	assert.Equal(t, []string{"/backup/one", "/backup/one"}, p.Destinations())
}

func TestProfile_RemoveDestinationOutOfRange(t *testing.T) {
	p := New(Snapshot{Destinations: []string{"d1"}})

	for _, idx := range []int{-1, 1, 5} {
		err := p.RemoveDestination(idx)
		require.Error(t, err)
		assert.True(t, ferrors.IsCategory(err, ferrors.CategoryValidation))
	}
	assert.Equal(t, []string{"d1"}, p.Destinations())
}

func TestProfile_SnapshotIsIsolated(t *testing.T) {
	p := New(Snapshot{Source: "s", Destinations: []string{"d1"}})
	snap := p.Snapshot()

	p.AddDestination("d2")
	assert.Equal(t, []string{"d1"}, snap.Destinations)

	snap.Destinations[0] = "changed"
	assert.Equal(t, []string{"d1", "d2"}, p.Destinations())

	dests := p.Destinations()
	dests[0] = "mutated"
	assert.Equal(t, "d1", p.Destinations()[0])
}

func TestProfile_ConcurrentAccess(t *testing.T) {
	p := &Profile{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.AddDestination("d")
		}()
		go func() {
			defer wg.Done()
			_ = p.Snapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, p.Destinations(), 50)
}

func TestSet(t *testing.T) {
	t.Run("clamps count", func(t *testing.T) {
		assert.Equal(t, 1, NewSet(0).Len())
		assert.Equal(t, 2, NewSet(2).Len())
		assert.Equal(t, MaxProfiles, NewSet(10).Len())
	})

	t.Run("get is one based", func(t *testing.T) {
		s := NewSet(3)
		p, err := s.Get(1)
		require.NoError(t, err)
		p.SetSource("first")

		_, err = s.Get(0)
		require.Error(t, err)
		_, err = s.Get(4)
		require.Error(t, err)

		snaps := s.Snapshots()
		require.Len(t, snaps, 3)
		assert.Equal(t, "first", snaps[0].Source)
	})

	t.Run("from snapshots", func(t *testing.T) {
		s := NewSetFrom(2, []Snapshot{
			{Source: "a", Destinations: []string{"d1"}},
			{Source: "b"},
			{Source: "c"},
		})
		require.Equal(t, 2, s.Len())

		var ids []int
		var sources []string
		s.Each(func(id int, p *Profile) {
			ids = append(ids, id)
			sources = append(sources, p.Source())
		})
		assert.Equal(t, []int{1, 2}, ids)
		assert.Equal(t, []string{"a", "b"}, sources)
	})
}

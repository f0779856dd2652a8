package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_KeepsCreationOrder(t *testing.T) {
	s := NewStore()
	a := s.Create("a")
	b := s.Create("b")
	c := s.Create("c")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(s))

	assert.True(t, s.Delete(b.ID))
	assert.False(t, s.Delete(b.ID))
	assert.Equal(t, []string{a.ID, c.ID}, ids(s))
}

func TestStore_ListIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Create("a")

	snap := s.List()
	snap[0].Text = "changed"

	assert.Equal(t, "a", s.List()[0].Text)
}

func TestStore_ConcurrentCreate(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create("n")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}

func ids(s *Store) []string {
	var out []string
	for _, n := range s.List() {
		out = append(out, n.ID)
	}
	return out
}

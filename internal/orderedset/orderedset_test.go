package orderedset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_InsertionOrder(t *testing.T) {
	var s Set[string]
	assert.True(t, s.Add("User"))
	assert.True(t, s.Add("Address"))
	assert.False(t, s.Add("User"))
	assert.True(t, s.Add("Error"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"User", "Address", "Error"}, s.Items())
	assert.Equal(t, []string{"User", "Address", "Error"}, slices.Collect(s.All()))
	assert.True(t, s.Has("Address"))
	assert.False(t, s.Has("Missing"))
}

func TestSet_ItemsIsCopy(t *testing.T) {
	s := New("a", "b")
	items := s.Items()
	items[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Items())
}

func TestNew_DropsDuplicates(t *testing.T) {
	s := New(3, 1, 3, 2, 1)
	assert.Equal(t, []int{3, 1, 2}, s.Items())
}

func TestSet_Nil(t *testing.T) {
	var s *Set[int]
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(1))
	assert.Nil(t, s.Items())
	assert.Empty(t, slices.Collect(s.All()))
}

func TestSet_AllEarlyExit(t *testing.T) {
	s := New("a", "b", "c")
	var seen []string
	for item := range s.All() {
		seen = append(seen, item)
		if item == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

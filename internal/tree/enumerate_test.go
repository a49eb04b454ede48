package tree

import (
	"testing"

	"github.com/calumari/jwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangxl0591/ConfigJson/internal/jsonptr"
)

func TestEnumerateKeys_PreOrder(t *testing.T) {
	doc := jwalk.D{
		{Key: "a", Value: jwalk.D{{Key: "b", Value: float64(1)}}},
		{Key: "c", Value: jwalk.A{
			jwalk.D{{Key: "d", Value: float64(2)}},
		}},
	}

	got := EnumerateKeys(doc, jsonptr.Path{})

	want := []string{"", "/a", "/a/b", "/c", "/c/~20", "/c/~20/d"}
	assert.Equal(t, want, got)
}

func TestEnumerateKeys_ScalarYieldsBaseOnly(t *testing.T) {
	got := EnumerateKeys("hello", jsonptr.MustParse("/x"))
	assert.Equal(t, []string{"/x"}, got)
}

func TestEnumerateKeys_EmptyContainers(t *testing.T) {
	doc := jwalk.D{
		{Key: "obj", Value: jwalk.D{}},
		{Key: "arr", Value: jwalk.A{}},
	}

	got := EnumerateKeys(doc, jsonptr.Path{})

	want := []string{"", "/obj", "/arr"}
	assert.Equal(t, want, got)
}

func TestEnumerateKeys_NonRootBase(t *testing.T) {
	value := jwalk.D{{Key: "b", Value: float64(1)}}

	got := EnumerateKeys(value, jsonptr.MustParse("/a"))

	want := []string{"/a", "/a/b"}
	assert.Equal(t, want, got)
}

func TestEnumerate_PathsCarryValues(t *testing.T) {
	doc := jwalk.D{{Key: "a", Value: jwalk.A{true}}}

	var keys []string
	var values []any
	Walk(doc, jsonptr.Path{}, func(p jsonptr.Path, v any) bool {
		keys = append(keys, p.String())
		values = append(values, v)
		return true
	})

	require.Equal(t, []string{"", "/a", "/a/~20"}, keys)
	assert.Equal(t, true, values[2])
}

func TestWalk_FalseSkipsChildrenNotSiblings(t *testing.T) {
	doc := jwalk.D{
		{Key: "a", Value: jwalk.D{{Key: "b", Value: float64(1)}}},
		{Key: "c", Value: jwalk.A{true, "x"}},
	}

	var visited []string
	Walk(doc, jsonptr.Path{}, func(p jsonptr.Path, _ any) bool {
		visited = append(visited, p.String())
		return p.String() != "/a"
	})

	want := []string{"", "/a", "/c", "/c/~20", "/c/~21"}
	assert.Equal(t, want, visited)
}

func TestEnumerate_ReturnsPaths(t *testing.T) {
	doc := jwalk.D{{Key: "a", Value: float64(1)}}

	paths := Enumerate(doc, jsonptr.Path{})

	require.Len(t, paths, 2)
	assert.True(t, paths[0].Equal(jsonptr.Path{}))
	assert.True(t, paths[1].Equal(jsonptr.MustParse("/a")))
}

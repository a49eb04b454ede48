package jsonptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_Canonical(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, ""},
		{"single key", Path{Key("server")}, "/server"},
		{"nested keys", Path{Key("server"), Key("port")}, "/server/port"},
		{"index", Path{Key("servers"), Index(0)}, "/servers/~20"},
		{"index then key", Path{Key("servers"), Index(2), Key("name")}, "/servers/~22/name"},
		{"empty key", Path{Key("")}, "/"},
		{"key with slash", Path{Key("a/b")}, "/a~1b"},
		{"key with tilde", Path{Key("a~b")}, "/a~0b"},
		{"key looking like escape", Path{Key("~1")}, "/~01"},
		{"key looking like index marker", Path{Key("~2")}, "/~02"},
		{"numeric key stays a key", Path{Key("0")}, "/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	paths := []Path{
		{},
		{Key("a")},
		{Key("a"), Key("b"), Key("c")},
		{Key("a"), Index(0), Key("b")},
		{Index(3)},
		{Key("")},
		{Key(""), Key("")},
		{Key("weird/key~with specials")},
		{Key("~0~1~2")},
		{Key("1"), Index(1)},
		{Key("servers"), Index(10), Key("tags"), Index(0)},
	}

	for _, p := range paths {
		t.Run(p.Display(), func(t *testing.T) {
			got, err := Parse(p.String())
			require.NoError(t, err)
			assert.True(t, p.Equal(got), "Parse(%q) = %v, want %v", p.String(), got, p)
			// The encoding of the parsed path must reproduce the key exactly.
			assert.Equal(t, p.String(), got.String())
		})
	}
}

func TestString_Injective(t *testing.T) {
	// Pairs that naive separator-joined encodings collapse.
	pairs := []struct {
		name string
		a, b Path
	}{
		{"key 1 vs index 1", Path{Key("1")}, Path{Index(1)}},
		{"slash in key vs two segments", Path{Key("a/b")}, Path{Key("a"), Key("b")}},
		{"dot in key vs dotted children", Path{Key("a.b")}, Path{Key("a"), Key("b")}},
		{"tilde-one key vs slash key", Path{Key("~1")}, Path{Key("/")}},
		{"marker-looking key vs index", Path{Key("~22")}, Path{Index(2)}},
		{"empty key vs root", Path{Key("")}, Path{}},
		{"index 2 vs key 2", Path{Key("servers"), Index(2)}, Path{Key("servers"), Key("2")}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, tt.a.Equal(tt.b), "test pair must be distinct paths")
			assert.NotEqual(t, tt.a.String(), tt.b.String())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"missing leading separator", "a/b"},
		{"dangling escape", "/a~"},
		{"invalid escape", "/a~3b"},
		{"marker without digits", "/~2"},
		{"marker with non-decimal", "/~2x"},
		{"marker with sign", "/~2-1"},
		{"leading zeros", "/~201"},
		{"index overflow", "/~299999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.key)
			assert.Error(t, err)
		})
	}
}

func TestIsAncestorKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"root of child", "", "/a", true},
		{"root of deep child", "", "/a/~20/b", true},
		{"root of itself", "", "", false},
		{"direct child", "/a", "/a/b", true},
		{"deep descendant", "/a", "/a/b/~20", true},
		{"self", "/a/b", "/a/b", false},
		{"sibling", "/a", "/b", false},
		{"string prefix is not ancestry", "/ab", "/abc", false},
		{"index parent", "/items/~21", "/items/~21/name", true},
		{"index vs longer index", "/items/~21", "/items/~210", false},
		{"child of root key", "/a/b", "/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAncestorKey(tt.a, tt.b))
		})
	}
}

func TestIsAncestor_Paths(t *testing.T) {
	root := Path{}
	a := Path{Key("a")}
	ab := Path{Key("a"), Key("b")}
	a0 := Path{Key("a"), Index(0)}

	assert.True(t, root.IsAncestor(a))
	assert.True(t, a.IsAncestor(ab))
	assert.True(t, a.IsAncestor(a0))
	assert.False(t, ab.IsAncestor(a))
	assert.False(t, a.IsAncestor(a))
	// The key "b" and the index 0 diverge below /a.
	assert.False(t, ab.IsAncestor(a0))
}

func TestChild_DoesNotAliasParent(t *testing.T) {
	p := Path{Key("a")}
	first := p.Child(Key("b"))
	second := p.Child(Key("c"))

	assert.Equal(t, "/a/b", first.String())
	assert.Equal(t, "/a/c", second.String())
	assert.Equal(t, "/a", p.String())
}

func TestParent(t *testing.T) {
	p := MustParse("/a/~20/b")
	assert.Equal(t, "/a/~20", p.Parent().String())
	assert.Equal(t, "/a", p.Parent().Parent().String())
	assert.Equal(t, "", p.Parent().Parent().Parent().String())
	assert.Nil(t, Path{}.Parent())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "$", Path{}.Display())
	assert.Equal(t, "$.server.port", MustParse("/server/port").Display())
	assert.Equal(t, "$.servers[0].name", MustParse("/servers/~20/name").Display())
}

func TestDepth(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"", 0},
		{"/a", 1},
		{"/a/~20/b", 3},
		{"/", 1},
	}
	for _, tt := range tests {
		got, err := Depth(tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Depth(%q)", tt.key)
	}

	_, err := Depth("not-a-key")
	assert.Error(t, err)
}

func TestSortByDepth_StableShallowestFirst(t *testing.T) {
	paths := []Path{
		MustParse("/a/b"),
		MustParse("/z"),
		MustParse("/a/b/c"),
		MustParse("/a"),
		MustParse("/m/n"),
	}

	SortByDepth(paths)

	var keys []string
	for _, p := range paths {
		keys = append(keys, p.String())
	}
	// Equal depths keep their input order.
	assert.Equal(t, []string{"/z", "/a", "/a/b", "/m/n", "/a/b/c"}, keys)
}

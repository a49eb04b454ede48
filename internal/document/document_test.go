package document

import (
	"testing"

	"github.com/calumari/jwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"object", jwalk.D{}, KindObject},
		{"array", jwalk.A{}, KindArray},
		{"string", "hello", KindString},
		{"number", float64(3.5), KindNumber},
		{"boolean", true, KindBool},
		{"null", nil, KindNull},
		{"out-of-model int", 42, KindInvalid},
		{"out-of-model map", map[string]any{}, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestIsContainer(t *testing.T) {
	assert.True(t, IsContainer(jwalk.D{}))
	assert.True(t, IsContainer(jwalk.A{}))
	assert.False(t, IsContainer("text"))
	assert.False(t, IsContainer(nil))
	assert.False(t, IsContainer(float64(1)))
}

func TestClone_Independent(t *testing.T) {
	original := jwalk.D{
		{Key: "server", Value: jwalk.D{
			{Key: "port", Value: float64(8080)},
		}},
		{Key: "tags", Value: jwalk.A{"a", "b"}},
	}

	cloned := Clone(original).(jwalk.D)
	require.True(t, Equal(original, cloned))

	// Mutating the clone must not reach the original.
	cloned[0].Value.(jwalk.D)[0].Value = float64(9090)
	cloned[1].Value.(jwalk.A)[0] = "changed"

	assert.Equal(t, float64(8080), original[0].Value.(jwalk.D)[0].Value)
	assert.Equal(t, "a", original[1].Value.(jwalk.A)[0])
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{
			name: "equal nested documents",
			a:    jwalk.D{{Key: "a", Value: jwalk.A{float64(1), nil}}},
			b:    jwalk.D{{Key: "a", Value: jwalk.A{float64(1), nil}}},
			want: true,
		},
		{
			name: "member order matters",
			a:    jwalk.D{{Key: "a", Value: float64(1)}, {Key: "b", Value: float64(2)}},
			b:    jwalk.D{{Key: "b", Value: float64(2)}, {Key: "a", Value: float64(1)}},
			want: false,
		},
		{
			name: "null is not an empty object",
			a:    nil,
			b:    jwalk.D{},
			want: false,
		},
		{
			name: "empty array is not an empty object",
			a:    jwalk.A{},
			b:    jwalk.D{},
			want: false,
		},
		{
			name: "scalar equality",
			a:    "1",
			b:    "1",
			want: true,
		},
		{
			name: "string one is not number one",
			a:    "1",
			b:    float64(1),
			want: false,
		},
		{
			name: "differing array lengths",
			a:    jwalk.A{float64(1)},
			b:    jwalk.A{float64(1), float64(2)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

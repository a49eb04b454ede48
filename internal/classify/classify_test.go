package classify

import (
	"testing"

	"github.com/calumari/jwalk"
	"github.com/stretchr/testify/assert"

	"github.com/tangxl0591/ConfigJson/internal/config"
)

func TestClassify_DecisionOrder(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		key   string
		value any
		want  Kind
	}{
		{"array", "items", jwalk.A{float64(1)}, KindArray},
		{"empty array", "items", jwalk.A{}, KindArray},
		{"null is text", "note", nil, KindText},
		{"object", "server", jwalk.D{{Key: "a", Value: float64(1)}}, KindObject},
		{"empty object", "server", jwalk.D{}, KindObject},
		{"boolean true", "active", true, KindBooleanToggle},
		{"boolean false", "active", false, KindBooleanToggle},
		{"number", "port", float64(8080), KindNumber},
		{"zero number is still a number", "port", float64(0), KindNumber},
		{"string zero", "flag", "0", KindBinaryToggle},
		{"string one", "flag", "1", KindBinaryToggle},
		{"numeric string", "count", "42", KindNumber},
		{"numeric string with leading zero", "count", "01", KindNumber},
		{"decimal string", "ratio", "1.5", KindNumber},
		{"negative numeric string", "offset", "-3", KindNumber},
		{"scientific notation string", "big", "1e5", KindNumber},
		{"blank string", "name", "", KindText},
		{"padded numeric string", "name", " 1", KindText},
		{"plain text", "name", "hello", KindText},
		{"mixed text", "version", "1.2.3", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.key, tt.value))
		})
	}
}

func TestClassify_BinaryToggleIgnoresKeyName(t *testing.T) {
	c := NewClassifier()

	// "0"/"1" values toggle regardless of key, flag-looking or not.
	assert.Equal(t, KindBinaryToggle, c.Classify("enable_tls", "1"))
	assert.Equal(t, KindBinaryToggle, c.Classify("comment", "0"))
	assert.Equal(t, KindBinaryToggle, c.Classify("retries", "1"))

	// Conversely, a flag-looking key does not promote other strings.
	assert.Equal(t, KindText, c.Classify("enable_tls", "yes"))
	assert.Equal(t, KindText, c.Classify("is_admin", "true"))
	assert.Equal(t, KindNumber, c.Classify("switch_count", "2"))
}

func TestClassify_BooleanBeatsKeyHeuristic(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, KindBooleanToggle, c.Classify("comment", true))
	assert.Equal(t, KindBooleanToggle, c.Classify("enable_tls", false))
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()
	inputs := []struct {
		key   string
		value any
	}{
		{"flag", "1"},
		{"count", "42"},
		{"note", nil},
		{"items", jwalk.A{}},
	}

	for _, in := range inputs {
		first := c.Classify(in.key, in.value)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, c.Classify(in.key, in.value))
		}
	}
}

func TestFlagKey_Defaults(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		key  string
		want bool
	}{
		{"enable_tls", true},
		{"enableFeature", true},
		{"autoswitch", true},
		{"is_admin", true},
		{"isAdmin", true},
		{"has_children", true},
		{"mode", true},
		{"DarkMode", true},
		{"comment", false},
		{"name", false},
		{"display", false},
		{"mode_candidate", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, c.FlagKey(tt.key))
		})
	}
}

func TestFlagKey_ConfiguredPatterns(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Classify.FlagKeyPatterns = []string{"feature", ""}
	c := NewClassifierWithConfig(cfg)

	assert.True(t, c.FlagKey("featureGate"))
	assert.True(t, c.FlagKey("new_feature"))
	assert.False(t, c.FlagKey("comment"))

	// The empty pattern must not match everything.
	assert.False(t, c.FlagKey("anything"))
}

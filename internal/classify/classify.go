// Package classify maps document values onto editing widget kinds.
//
// Classification is deterministic and depends only on the member key and the
// value. The key-name flag heuristic is advisory output for listings; it
// never changes the classification itself.
package classify

import (
	"strconv"
	"strings"

	"github.com/calumari/jwalk"
	"github.com/iancoleman/strcase"

	"github.com/tangxl0591/ConfigJson/internal/config"
)

// Kind identifies the widget a value is edited with.
type Kind string

const (
	// KindArray values expand into per-element child widgets plus a bulk
	// JSON-literal editor.
	KindArray Kind = "array"
	// KindObject values expand into per-member child widgets.
	KindObject Kind = "object"
	// KindBooleanToggle is a checkbox over a JSON boolean.
	KindBooleanToggle Kind = "boolean_toggle"
	// KindBinaryToggle is a checkbox over the string values "0" and "1".
	KindBinaryToggle Kind = "binary_toggle"
	// KindNumber is a numeric input.
	KindNumber Kind = "number"
	// KindText is a free-text input, the fallback for everything else.
	KindText Kind = "text"
)

// Classifier applies the widget rules, extended by configuration.
type Classifier struct {
	config *config.Config
}

// NewClassifier creates a Classifier with default configuration.
func NewClassifier() *Classifier {
	return &Classifier{config: config.NewConfig()}
}

// NewClassifierWithConfig creates a Classifier with custom configuration.
func NewClassifierWithConfig(cfg *config.Config) *Classifier {
	return &Classifier{config: cfg}
}

// Classify returns the widget kind for the value stored under key. The rules
// apply in a fixed order, first match wins:
//
//  1. arrays and objects are containers
//  2. null edits as free text (an edit replaces it with a string)
//  3. booleans are boolean toggles
//  4. numbers are numeric inputs
//  5. the strings "0" and "1" are binary toggles
//  6. other strings that parse fully as numbers are numeric inputs
//  7. everything else is free text
func (c *Classifier) Classify(key string, value any) Kind {
	switch v := value.(type) {
	case jwalk.A:
		return KindArray
	case nil:
		return KindText
	case jwalk.D:
		return KindObject
	case bool:
		return KindBooleanToggle
	case float64:
		return KindNumber
	case string:
		return c.classifyString(key, v)
	default:
		// Out-of-model values never come from the codec; fall back to text
		// rather than inventing a widget for them.
		return KindText
	}
}

// classifyString decides among the string-valued widgets. An exact "0" or
// "1" is a binary toggle no matter what the key is called: documents in the
// wild rely on bare "0"/"1" values toggling, and keying this rule on names
// would silently retype those nodes. The flag-key heuristic stays advisory.
func (c *Classifier) classifyString(key, s string) Kind {
	_ = key

	if s == "0" || s == "1" {
		return KindBinaryToggle
	}
	if isNumericLiteral(s) {
		return KindNumber
	}
	return KindText
}

// FlagKey reports whether the key name looks like an on/off flag. Listings
// show this as advisory metadata next to the classified kind. The key is
// snake_cased first so camelCase keys match the same patterns.
func (c *Classifier) FlagKey(key string) bool {
	norm := strcase.ToSnake(key)

	if strings.HasPrefix(norm, "is_") || strings.HasPrefix(norm, "has_") {
		return true
	}
	if strings.Contains(norm, "enable") || strings.Contains(norm, "switch") {
		return true
	}
	if norm == "mode" || strings.HasSuffix(norm, "_mode") {
		return true
	}

	for _, p := range c.config.Classify.FlagKeyPatterns {
		if p == "" {
			continue
		}
		if strings.Contains(norm, strcase.ToSnake(p)) {
			return true
		}
	}
	return false
}

// isNumericLiteral reports whether s is non-blank and parses in full as a
// floating-point literal. Such strings get the numeric editor but keep
// their string type in the document.
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Package editor provides an editing session over a JSON configuration
// document: load a document, read and update values by path, check the
// paths worth keeping, and export the checked subset as a new document.
//
// Basic usage:
//
//	s := editor.New()
//	if err := s.Load(input); err != nil {
//		return err
//	}
//	s.Toggle(editor.MustParsePath("/server"), false)
//	out, err := s.Export()
//
// A Session is owned by a single goroutine. Every transition is a pure
// function of the previous state: the document is immutable and updates
// replace it wholesale, so a Document value handed out earlier never
// changes underneath its holder.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/calumari/jwalk"

	"github.com/tangxl0591/ConfigJson/internal/classify"
	"github.com/tangxl0591/ConfigJson/internal/config"
	"github.com/tangxl0591/ConfigJson/internal/document"
	apperrors "github.com/tangxl0591/ConfigJson/internal/errors"
	"github.com/tangxl0591/ConfigJson/internal/jsonptr"
	"github.com/tangxl0591/ConfigJson/internal/selection"
	"github.com/tangxl0591/ConfigJson/internal/subset"
	"github.com/tangxl0591/ConfigJson/internal/tree"
)

// Vocabulary types, aliased so callers never import internal packages.
type (
	// Path addresses a value in the document. The zero value is the root.
	Path = jsonptr.Path
	// Segment is one step of a Path: a Key or an Index.
	Segment = jsonptr.Segment
	// Key addresses an object member by name.
	Key = jsonptr.Key
	// Index addresses an array element by position.
	Index = jsonptr.Index
	// WidgetKind names the edit widget a value should be presented with.
	WidgetKind = classify.Kind
)

const (
	WidgetArray         = classify.KindArray
	WidgetObject        = classify.KindObject
	WidgetBooleanToggle = classify.KindBooleanToggle
	WidgetBinaryToggle  = classify.KindBinaryToggle
	WidgetNumber        = classify.KindNumber
	WidgetText          = classify.KindText
)

// ErrEmptySelection is returned by Export when nothing is checked.
var ErrEmptySelection = apperrors.ErrEmptySelection

// ParsePath decodes a canonical path key, as produced by Selection.
func ParsePath(key string) (Path, error) { return jsonptr.Parse(key) }

// MustParsePath is ParsePath for keys known to be canonical. It panics on
// malformed input.
func MustParsePath(key string) Path { return jsonptr.MustParse(key) }

// Option configures a Session at construction time.
type Option func(*Session)

// WithConfig supplies a loaded configuration. Nil is ignored.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithLogger supplies the session logger. Nil is ignored and the default
// logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session holds the current document and the set of checked paths. The
// zero-ish state from New is an empty object with nothing checked.
type Session struct {
	doc        any
	selection  *selection.Set
	config     *config.Config
	logger     *slog.Logger
	classifier *classify.Classifier
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		doc:       jwalk.D{},
		selection: selection.New(),
		config:    config.NewConfig(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.classifier = classify.NewClassifierWithConfig(s.config)
	return s
}

// Load parses jsonText and replaces the document and the selection
// together: the new selection checks every path of the new document, ready
// to be narrowed. Input is read leniently (comments and trailing commas are
// tolerated). On a parse failure the session keeps its previous document
// and selection.
func (s *Session) Load(jsonText []byte) error {
	doc, err := document.DecodeLenient(jsonText)
	if err != nil {
		return err
	}
	keys := tree.EnumerateKeys(doc, Path{})
	s.doc = doc
	s.selection.ReplaceAll(keys)
	s.logger.Info("document loaded", "bytes", len(jsonText), "paths", len(keys))
	return nil
}

// Reset returns the session to its initial state: an empty object document
// with nothing checked.
func (s *Session) Reset() {
	s.doc = jwalk.D{}
	s.selection.Clear()
}

// Document returns the current document value. It is immutable by
// construction; treat it as read-only.
func (s *Session) Document() any { return s.doc }

// Value resolves p in the current document.
func (s *Session) Value(p Path) (any, bool) {
	return tree.Get(s.doc, p)
}

// Update writes v at p. The write is copy-on-write: absent intermediate
// containers appear typed by the path's shape, and an existing value that
// stands where the path needs a container is replaced, which Update logs at
// debug level. v must be a document value (jwalk.D, jwalk.A, string,
// float64, bool, or nil); the Update* conveniences coerce widget input.
func (s *Session) Update(p Path, v any) error {
	if document.KindOf(v) == document.KindInvalid {
		return apperrors.NewInputError(fmt.Sprintf("value of type %T is not a document value", v), nil)
	}
	s.logOverwrites(p)
	s.doc = tree.Set(s.doc, p, v)
	return nil
}

// UpdateText stores text-widget input as a string value.
func (s *Session) UpdateText(p Path, text string) error {
	return s.Update(p, text)
}

// UpdateNumber stores number-widget input.
func (s *Session) UpdateNumber(p Path, n float64) error {
	return s.Update(p, n)
}

// UpdateBool stores toggle-widget input.
func (s *Session) UpdateBool(p Path, b bool) error {
	return s.Update(p, b)
}

// UpdateArrayLiteral parses text as a JSON array literal and stores the
// result. Invalid input returns an array-literal error and leaves the
// document untouched.
func (s *Session) UpdateArrayLiteral(p Path, text string) error {
	arr, err := document.ParseArray(text)
	if err != nil {
		return err
	}
	return s.Update(p, arr)
}

// Toggle checks (included true) or unchecks the subtree rooted at p, as the
// document stands right now: the cascade enumerates p's descendants at
// toggle time, so later edits do not retroactively adjust the selection. A
// path that no longer resolves toggles just its own key; stale keys are
// legal selection state and export skips them.
func (s *Session) Toggle(p Path, included bool) {
	keys := s.cascadeKeys(p)
	if included {
		s.selection.Check(keys...)
	} else {
		s.selection.Uncheck(keys...)
	}
}

func (s *Session) cascadeKeys(p Path) []string {
	v, ok := tree.Get(s.doc, p)
	if !ok {
		return []string{p.String()}
	}
	return tree.EnumerateKeys(v, p)
}

// SelectAll checks every path of the current document, the same state Load
// starts from.
func (s *Session) SelectAll() {
	s.selection.ReplaceAll(tree.EnumerateKeys(s.doc, Path{}))
}

// DeselectAll unchecks everything.
func (s *Session) DeselectAll() {
	s.selection.Clear()
}

// Selection returns the checked canonical keys in insertion order.
func (s *Session) Selection() []string {
	return s.selection.Keys()
}

// Selected reports whether p itself is checked. An ancestor being checked
// implies nothing; the cascade made every member explicit when it ran.
func (s *Session) Selected(p Path) bool {
	return s.selection.Has(p.String())
}

// Export reconstructs the checked subset of the document and encodes it
// with four-space indentation. An empty selection fails with
// ErrEmptySelection before any output is produced, so the caller can
// confirm; ExportAllowingEmpty is the post-confirmation variant.
func (s *Session) Export() ([]byte, error) {
	if s.selection.Len() == 0 {
		return nil, apperrors.NewExportError("nothing is selected", apperrors.ErrEmptySelection)
	}
	return s.exportSubset()
}

// ExportAllowingEmpty exports like Export but permits an empty selection,
// producing an empty document.
func (s *Session) ExportAllowingEmpty() ([]byte, error) {
	return s.exportSubset()
}

func (s *Session) exportSubset() ([]byte, error) {
	sub, skipped := subset.Build(s.doc, s.selection.Keys())
	for _, skip := range skipped {
		s.logger.Debug("dropping stale selection key", "error", skip)
	}
	out, err := document.EncodeIndent(sub)
	if err != nil {
		return nil, err
	}
	s.logger.Info("selection exported", "checked", s.selection.Len(), "stale", len(skipped), "bytes", len(out))
	return out, nil
}

// ExportFileName returns the file name exports should be written under.
func (s *Session) ExportFileName() string {
	if s.config.Export.Filename != "" {
		return s.config.Export.Filename
	}
	return config.DefaultExportFilename
}

// Classify reports the widget kind for the value at p. The key-name input
// to classification is the final segment's member key; the root and array
// elements classify with an empty key.
func (s *Session) Classify(p Path) (WidgetKind, bool) {
	v, ok := tree.Get(s.doc, p)
	if !ok {
		return "", false
	}
	return s.classifier.Classify(memberKey(p), v), true
}

// Walk visits every path of the current document in pre-order with its
// value and widget kind. Returning false skips that value's children.
func (s *Session) Walk(fn func(p Path, v any, kind WidgetKind) bool) {
	tree.Walk(s.doc, Path{}, func(p Path, v any) bool {
		return fn(p, v, s.classifier.Classify(memberKey(p), v))
	})
}

// memberKey extracts the key-name classification input from a path.
func memberKey(p Path) string {
	if len(p) == 0 {
		return ""
	}
	if k, ok := p[len(p)-1].(Key); ok {
		return string(k)
	}
	return ""
}

// logOverwrites walks p against the current document and reports, at debug
// level, the first position where the coming write will replace an existing
// value to make room for a container. Descending through nulls and absent
// members is creation, not replacement, and stays quiet.
func (s *Session) logOverwrites(p Path) {
	cur := s.doc
	for i, seg := range p {
		switch sg := seg.(type) {
		case Key:
			obj, ok := cur.(jwalk.D)
			if !ok {
				if cur != nil {
					s.logger.Debug("overwriting value to make an object",
						"path", p[:i].String(), "was", document.KindOf(cur).String())
				}
				return
			}
			cur = nil
			for _, e := range obj {
				if e.Key == string(sg) {
					cur = e.Value
					break
				}
			}
		case Index:
			arr, ok := cur.(jwalk.A)
			if !ok {
				if cur != nil {
					s.logger.Debug("overwriting value to make an array",
						"path", p[:i].String(), "was", document.KindOf(cur).String())
				}
				return
			}
			idx := int(sg)
			if idx < 0 || idx >= len(arr) {
				return
			}
			cur = arr[idx]
		}
	}
}

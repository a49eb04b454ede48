package document

import (
	"bytes"
	"fmt"
	"io"

	stderrors "errors"

	"github.com/calumari/jwalk"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"

	"github.com/tangxl0591/ConfigJson/internal/errors"
)

// maxDepth bounds container nesting during decode so hostile input cannot
// exhaust the stack.
const maxDepth = 1000

// indent is the export indentation. Four spaces is part of the output
// contract, not a style preference: existing downstream diffs expect it.
const indent = "    "

// Decode parses exactly one JSON document into the model, preserving object
// member order. Trailing non-whitespace after the first value is an error.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	dec := jsontext.NewDecoder(bytes.NewReader(data))
	v, err := readValue(dec, 0)
	if err != nil {
		var syntaxErr *jsontext.SyntacticError
		if stderrors.As(err, &syntaxErr) {
			return nil, errors.NewParseError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.ByteOffset),
				err,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.NewParseError("unexpected end of JSON input", err)
		}
		return nil, errors.NewParseError("failed to decode JSON", err)
	}

	// A well-formed document is a single top-level value. The decoder
	// happily reads streams, so probe for a second value ourselves.
	if _, err := dec.ReadToken(); err == nil {
		return nil, errors.NewParseError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParseError("invalid trailing data after first JSON value", err)
	}

	return v, nil
}

// DecodeLenient is Decode for hand-edited input: comments and trailing
// commas (HuJSON) are standardized away first. Strictly valid JSON passes
// through unchanged.
func DecodeLenient(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.NewParseError("input is not valid JSON", err)
	}
	return Decode(std)
}

// ParseArray parses a standalone JSON array literal, the payload of a bulk
// array edit. Valid JSON of any other kind is still rejected.
func ParseArray(text string) (jwalk.A, error) {
	v, err := Decode([]byte(text))
	if err != nil {
		return nil, errors.NewArrayLiteralError("text does not parse as JSON", err)
	}
	arr, ok := v.(jwalk.A)
	if !ok {
		return nil, errors.NewArrayLiteralError(
			fmt.Sprintf("expected a JSON array, got %s", KindOf(v)),
			errors.ErrNotArray,
		)
	}
	return arr, nil
}

// Encode renders v as compact JSON with no trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := writeValue(enc, v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeIndent renders v as pretty JSON, four-space indented, ending in a
// single newline. This is the export format.
func EncodeIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.WithIndent(indent))
	if err := writeValue(enc, v); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n'), nil
}

// readValue decodes the next value from dec into the model. Objects keep
// their member order by accumulating jwalk entries in stream order.
func readValue(dec *jsontext.Decoder, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("maximum nesting depth %d exceeded", maxDepth)
	}

	switch dec.PeekKind() {
	case '{':
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read opening '{': %w", err)
		}
		doc := jwalk.D{}
		for dec.PeekKind() != '}' {
			var key string
			if err := json.UnmarshalDecode(dec, &key); err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
			val, err := readValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			doc = append(doc, jwalk.E{Key: key, Value: val})
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read closing '}': %w", err)
		}
		return doc, nil
	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read opening '[': %w", err)
		}
		arr := jwalk.A{}
		for dec.PeekKind() != ']' {
			el, err := readValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, el)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read closing ']': %w", err)
		}
		return arr, nil
	default:
		// Scalar: string, number, bool or null.
		var raw any
		if err := json.UnmarshalDecode(dec, &raw); err != nil {
			return nil, fmt.Errorf("read scalar: %w", err)
		}
		return raw, nil
	}
}

// writeValue streams v through enc token by token, emitting object members
// in model order.
func writeValue(enc *jsontext.Encoder, v any) error {
	switch val := v.(type) {
	case jwalk.D:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return fmt.Errorf("write '{': %w", err)
		}
		for _, e := range val {
			if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
				return fmt.Errorf("write key %q: %w", e.Key, err)
			}
			if err := writeValue(enc, e.Value); err != nil {
				return err
			}
		}
		if err := enc.WriteToken(jsontext.EndObject); err != nil {
			return fmt.Errorf("write '}': %w", err)
		}
	case jwalk.A:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return fmt.Errorf("write '[': %w", err)
		}
		for _, el := range val {
			if err := writeValue(enc, el); err != nil {
				return err
			}
		}
		if err := enc.WriteToken(jsontext.EndArray); err != nil {
			return fmt.Errorf("write ']': %w", err)
		}
	case nil:
		if err := enc.WriteToken(jsontext.Null); err != nil {
			return fmt.Errorf("write null: %w", err)
		}
	case bool:
		if err := enc.WriteToken(jsontext.Bool(val)); err != nil {
			return fmt.Errorf("write bool: %w", err)
		}
	case float64:
		if err := enc.WriteToken(jsontext.Float(val)); err != nil {
			return fmt.Errorf("write number: %w", err)
		}
	case string:
		if err := enc.WriteToken(jsontext.String(val)); err != nil {
			return fmt.Errorf("write string: %w", err)
		}
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"log/slog"

	sp "github.com/4nd3r5on/go-strings-parser"
	"github.com/alecthomas/kong"
	"github.com/calumari/jwalk"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tangxl0591/ConfigJson/internal/classify"
	"github.com/tangxl0591/ConfigJson/internal/config"
	"github.com/tangxl0591/ConfigJson/internal/document"
	apperrors "github.com/tangxl0591/ConfigJson/internal/errors"
	"github.com/tangxl0591/ConfigJson/internal/projection"
	"github.com/tangxl0591/ConfigJson/pkg/editor"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string           `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	URL         string           `help:"HTTP(S) URL to fetch the input JSON from." short:"u"`
	Config      string           `help:"Path to config file. Searched for automatically when omitted." type:"path"`
	Debug       bool             `help:"Enable debug logging." short:"d"`
	Interactive bool             `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
	Version     kong.VersionFlag `help:"Show version information." short:"v"`

	Paths      PathsCmd      `cmd:"" help:"List every path in the document."`
	Inspect    InspectCmd    `cmd:"" help:"Show each path with its widget kind and a value preview."`
	Set        SetCmd        `cmd:"" help:"Apply edits to the document and write the result."`
	Export     ExportCmd     `cmd:"" help:"Export the checked subset of the document."`
	Projection ProjectionCmd `cmd:"" help:"Print the MongoDB projection matching the selection."`
}

// appContext holds the runtime context shared by all commands
type appContext struct {
	session *editor.Session
	cfg     *config.Config
	logger  *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("configjson"),
		kong.Description("A selective JSON configuration editor: load a document, check the paths worth keeping, export the subset"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("configjson version %s", Version)},
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// The usage was already shown by kong.UsageOnError()
		os.Exit(1)
	}

	app, err := newAppContext()
	if err == nil {
		err = ctx.Run(app)
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", apperrors.UserFriendlyError(err))

		fmt.Fprintf(os.Stderr, "\nFor help, run: configjson --help\n")

		os.Exit(1)
	}
}

// newAppContext loads configuration and builds the session every command
// runs against.
func newAppContext() (*appContext, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, "", false, CLI.Debug)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	return &appContext{
		session: editor.New(editor.WithConfig(cfg), editor.WithLogger(logger)),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// loadDocument reads the input source and loads it into the session.
func (a *appContext) loadDocument() error {
	data, err := readInput()
	if err != nil {
		return err
	}
	return a.session.Load(data)
}

// PathsCmd lists the canonical key of every path in the document.
type PathsCmd struct {
	Display bool `help:"Render paths in dotted display form instead of canonical keys."`
}

func (c *PathsCmd) Run(app *appContext) error {
	if err := app.loadDocument(); err != nil {
		return err
	}
	app.session.Walk(func(p editor.Path, _ any, _ editor.WidgetKind) bool {
		if c.Display {
			fmt.Println(p.Display())
		} else {
			fmt.Println(p.String())
		}
		return true
	})
	return nil
}

// InspectCmd prints one line per path: widget kind, flag-key marker,
// canonical key, and a short value preview.
type InspectCmd struct{}

func (c *InspectCmd) Run(app *appContext) error {
	if err := app.loadDocument(); err != nil {
		return err
	}
	classifier := classify.NewClassifierWithConfig(app.cfg)
	app.session.Walk(func(p editor.Path, v any, kind editor.WidgetKind) bool {
		// The marker is advisory: a key that looks like a feature flag.
		// Classification itself never depends on it.
		marker := " "
		if len(p) > 0 {
			if k, ok := p[len(p)-1].(editor.Key); ok && classifier.FlagKey(string(k)) {
				marker = "*"
			}
		}
		fmt.Printf("%-15s%s %s = %s\n", kind, marker, p.String(), preview(v))
		return true
	})
	return nil
}

// preview renders a value for listings without flooding the terminal.
func preview(v any) string {
	switch val := v.(type) {
	case jwalk.D:
		return fmt.Sprintf("object with %d members", len(val))
	case jwalk.A:
		return fmt.Sprintf("array with %d elements", len(val))
	default:
		out, err := document.Encode(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(out)
	}
}

// SetCmd applies key=value edits and writes the updated document.
type SetCmd struct {
	Edit   []string `help:"Edit to apply, as key=value with a canonical path key; repeatable. Values are coerced by the target's widget kind; new paths read the value as a JSON literal, or as text when it is not one." short:"e" required:""`
	Output string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

func (c *SetCmd) Run(app *appContext) error {
	if err := app.loadDocument(); err != nil {
		return err
	}
	for _, edit := range c.Edit {
		key, raw, ok := strings.Cut(edit, "=")
		if !ok {
			return apperrors.NewInputError(fmt.Sprintf("edit '%s' is not in key=value form", edit), nil)
		}
		p, err := editor.ParsePath(key)
		if err != nil {
			return apperrors.NewInputError(fmt.Sprintf("edit key '%s' is not a canonical path", key), err)
		}
		if err := applyEdit(app, p, raw); err != nil {
			return err
		}
	}
	return writeDocument(app, c.Output)
}

// applyEdit coerces raw by the widget kind of the value currently at p.
func applyEdit(app *appContext, p editor.Path, raw string) error {
	kind, found := app.session.Classify(p)
	if !found {
		return applyNewValue(app, p, raw)
	}
	switch kind {
	case editor.WidgetObject:
		return apperrors.NewInputError(fmt.Sprintf("path '%s' holds an object; edit its members instead", p.String()), nil)
	case editor.WidgetArray:
		return app.session.UpdateArrayLiteral(p, raw)
	case editor.WidgetBooleanToggle:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewInputError(fmt.Sprintf("path '%s' is a boolean toggle and takes true or false, not '%s'", p.String(), raw), err)
		}
		return app.session.UpdateBool(p, b)
	case editor.WidgetBinaryToggle:
		if raw != "0" && raw != "1" {
			return apperrors.NewInputError(fmt.Sprintf("path '%s' is a binary toggle and takes 0 or 1, not '%s'", p.String(), raw), nil)
		}
		return app.session.UpdateText(p, raw)
	case editor.WidgetNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperrors.NewInputError(fmt.Sprintf("path '%s' is numeric and '%s' does not parse as a number", p.String(), raw), err)
		}
		// Numeric strings stay strings so the document keeps its own
		// convention; JSON numbers stay numbers.
		if current, _ := app.session.Value(p); document.KindOf(current) == document.KindString {
			return app.session.UpdateText(p, raw)
		}
		return app.session.UpdateNumber(p, n)
	default:
		return app.session.UpdateText(p, raw)
	}
}

// applyNewValue stores a value at a path the document does not have yet:
// raw is read as a JSON literal where possible and as plain text otherwise.
func applyNewValue(app *appContext, p editor.Path, raw string) error {
	if v, err := document.Decode([]byte(raw)); err == nil {
		return app.session.Update(p, v)
	}
	return app.session.UpdateText(p, raw)
}

// writeDocument pretty-prints the session document to a file or stdout.
func writeDocument(app *appContext, outputPath string) error {
	out, err := document.EncodeIndent(app.session.Document())
	if err != nil {
		return err
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0644); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write to file '%s'", outputPath), err)
		}
		fmt.Fprintf(os.Stderr, "Updated document written to %s\n", outputPath)
		return nil
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return apperrors.NewExportError("failed to write to stdout", err)
	}
	return nil
}

// ExportCmd narrows the selection and writes the reconstructed subset.
type ExportCmd struct {
	Select     string `help:"Comma-separated canonical path keys to check, cascading over their subtrees. Everything is checked when omitted."`
	Deselect   string `help:"Comma-separated canonical path keys to uncheck, applied after --select."`
	Output     string `help:"Path to output file. Defaults to the configured export filename." short:"o" type:"path"`
	AllowEmpty bool   `help:"Export even when nothing is selected."`
}

func (c *ExportCmd) Run(app *appContext) error {
	if err := app.loadDocument(); err != nil {
		return err
	}
	if err := applySelection(app, c.Select, c.Deselect); err != nil {
		return err
	}

	var out []byte
	var err error
	if c.AllowEmpty || app.cfg.Export.AllowEmpty {
		out, err = app.session.ExportAllowingEmpty()
	} else {
		out, err = app.session.Export()
	}
	if err != nil {
		return err
	}

	target := c.Output
	if target == "" {
		target = app.session.ExportFileName()
	}
	if err := os.WriteFile(target, out, 0644); err != nil {
		return apperrors.NewExportError(fmt.Sprintf("failed to write to file '%s'", target), err)
	}
	fmt.Fprintf(os.Stderr, "Exported selection written to %s\n", target)
	return nil
}

// ProjectionCmd emits the MongoDB include-projection for the selection.
type ProjectionCmd struct {
	Select   string `help:"Comma-separated canonical path keys to check, cascading over their subtrees. Everything is checked when omitted."`
	Deselect string `help:"Comma-separated canonical path keys to uncheck, applied after --select."`
}

func (c *ProjectionCmd) Run(app *appContext) error {
	if err := app.loadDocument(); err != nil {
		return err
	}
	if err := applySelection(app, c.Select, c.Deselect); err != nil {
		return err
	}

	proj, err := projection.Project(app.session.Selection())
	if err != nil {
		return err
	}
	data, err := bson.MarshalExtJSON(proj, false, false)
	if err != nil {
		return apperrors.NewExportError("failed to render the projection", err)
	}
	fmt.Println(string(data))
	return nil
}

// applySelection narrows the session selection from --select/--deselect
// path lists. Toggles cascade exactly like checkbox clicks.
func applySelection(app *appContext, selectList, deselectList string) error {
	if selectList != "" {
		keys, err := parseKeyList(selectList)
		if err != nil {
			return err
		}
		app.session.DeselectAll()
		for _, k := range keys {
			p, err := editor.ParsePath(k)
			if err != nil {
				return apperrors.NewInputError(fmt.Sprintf("path key '%s' is not canonical", k), err)
			}
			app.session.Toggle(p, true)
		}
	}
	if deselectList != "" {
		keys, err := parseKeyList(deselectList)
		if err != nil {
			return err
		}
		for _, k := range keys {
			p, err := editor.ParsePath(k)
			if err != nil {
				return apperrors.NewInputError(fmt.Sprintf("path key '%s' is not canonical", k), err)
			}
			app.session.Toggle(p, false)
		}
	}
	return nil
}

// parseKeyList parses a comma-separated list of canonical path keys.
func parseKeyList(s string) ([]string, error) {
	keys, err := sp.Parse(s,
		sp.WithProcessFunc(
			func(element string) (processed string, skip bool, err error) {
				element = strings.TrimSpace(element)
				return element, element == "", nil
			},
		),
	)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to parse path list '%s'", s), err)
	}
	return keys, nil
}

// readInput reads JSON from file, URL, or stdin
func readInput() ([]byte, error) {
	if CLI.Input != "" && CLI.URL != "" {
		return nil, apperrors.NewInputError("cannot specify both --input and --url", nil)
	}

	if CLI.URL != "" {
		return fetchURL(CLI.URL)
	}

	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			return nil, apperrors.NewInputError(fmt.Sprintf("failed to read input file '%s'", CLI.Input), err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, apperrors.NewInputError(fmt.Sprintf("input file '%s' is empty", CLI.Input), apperrors.ErrEmptyInput)
		}
		return data, nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, apperrors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return nil, apperrors.NewInputError("no input provided", apperrors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, apperrors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, apperrors.NewInputError("empty input received from stdin", apperrors.ErrEmptyInput)
	}
	return data, nil
}

// fetchURL downloads the input document over HTTP(S).
func fetchURL(url string) ([]byte, error) {
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return nil, apperrors.NewInputError(fmt.Sprintf("invalid URL scheme in '%s', only http and https are supported", url), nil)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("request to '%s' failed", url), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInputError(fmt.Sprintf("request to '%s' returned status %s", url, resp.Status), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to read response from '%s'", url), err)
	}
	if len(data) == 0 {
		return nil, apperrors.NewInputError(fmt.Sprintf("empty response from '%s'", url), apperrors.ErrEmptyInput)
	}
	return data, nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() ([]byte, error) {
	fmt.Fprintln(os.Stderr, "ConfigJson Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(strings.TrimSpace(jsonData)) == 0 {
		return nil, apperrors.NewInputError("empty input received", apperrors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return []byte(jsonData), nil
}

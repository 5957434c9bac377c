package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/dispatch"
	"github.com/fwojciec/jurisref/fs"
	"github.com/fwojciec/jurisref/nativemsg"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Config      Config
	Logger      *slog.Logger
	Verbose     bool
	Fetcher     jurisref.Fetcher
	PageFetcher jurisref.Fetcher // retries transient failures
	Registry    jurisref.AdapterRegistry
	Builder     jurisref.RecordBuilder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Browser   bool          `help:"Render pages in a headless browser"`
	Timeout   time.Duration `short:"t" help:"Fetch timeout per page (default 10s)"`
	Markdown  bool          `short:"m" help:"Render note bodies as Markdown"`
	NoteLimit int           `name:"note-limit" help:"Maximum characters per note (default 30000)"`
	Config    string        `help:"Path to the YAML config file"`
	Verbose   bool          `short:"v" help:"Log fetches and extraction steps"`

	Check    CheckCmd    `cmd:"" help:"Report whether a page holds a supported decision"`
	Metadata MetadataCmd `cmd:"" help:"Print the decision's metadata as JSON"`
	Decision DecisionCmd `cmd:"" help:"Print the full decision text"`
	Analysis AnalysisCmd `cmd:"" help:"Print the analysis published with the decision"`
	RIS      RISCmd      `cmd:"" name:"ris" help:"Print the RIS citation record"`
	Import   ImportCmd   `cmd:"" help:"Write the complete RIS record into an import directory"`
	Serve    ServeCmd    `cmd:"" help:"Run as a browser native-messaging host on stdin/stdout"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URL string `arg:"" help:"Decision page URL"`
}

// MetadataCmd is the "metadata" subcommand.
type MetadataCmd struct {
	URL string `arg:"" help:"Decision page URL"`
}

// DecisionCmd is the "decision" subcommand.
type DecisionCmd struct {
	URL string `arg:"" help:"Decision page URL"`
}

// AnalysisCmd is the "analysis" subcommand.
type AnalysisCmd struct {
	URL string `arg:"" help:"Decision page URL"`
}

// RISCmd is the "ris" subcommand.
type RISCmd struct {
	URL      string `arg:"" help:"Decision page URL"`
	Complete bool   `short:"c" help:"Include decision text, analysis and opinion notes"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URL string `arg:"" help:"Decision page URL"`
	Dir string `short:"d" help:"Import directory watched by the reference manager"`
	Yes bool   `short:"y" help:"Import without asking for confirmation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	if deps.Registry.Match(c.URL) == jurisref.SiteUnknown {
		fmt.Fprintf(deps.Stdout, "not compatible  %s\n", c.URL)
		return nil
	}

	handler, err := deps.navigate(c.URL)
	if err != nil {
		return err
	}

	resp := handler.Handle(deps.Ctx, dispatch.Request{Action: dispatch.ActionCheckCompatibility})
	if resp.Compatibility.Compatible {
		fmt.Fprintf(deps.Stdout, "compatible  %s  %s\n", resp.Compatibility.SiteName, resp.Compatibility.URL)
	} else {
		fmt.Fprintf(deps.Stdout, "not compatible  %s\n", resp.Compatibility.URL)
	}
	return nil
}

// Run executes the metadata command.
func (c *MetadataCmd) Run(deps *Dependencies) error {
	adapter, err := deps.adapter(c.URL)
	if err != nil {
		return err
	}

	m, err := adapter.ExtractMetadata(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jurisref.ErrorMessage(err))
		return err
	}
	if m == nil {
		return fmt.Errorf("page could not be read")
	}

	if v := deps.Builder.Validate(m, adapter.RecordOptions()); !v.Valid {
		fmt.Fprintf(deps.Stderr, "warning: missing %s\n", strings.Join(v.MissingFields, ", "))
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(m)
}

// Run executes the decision command.
func (c *DecisionCmd) Run(deps *Dependencies) error {
	return deps.run(c.URL, dispatch.ActionCopyDecision, nil)
}

// Run executes the analysis command.
func (c *AnalysisCmd) Run(deps *Dependencies) error {
	return deps.run(c.URL, dispatch.ActionCopyAnalysis, nil)
}

// Run executes the ris command.
func (c *RISCmd) Run(deps *Dependencies) error {
	if !c.Complete {
		return deps.run(c.URL, dispatch.ActionCopyRIS, nil)
	}

	adapter, err := deps.adapter(c.URL)
	if err != nil {
		return err
	}

	result, err := jurisref.Extract(deps.Ctx, adapter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jurisref.ErrorMessage(err))
		return err
	}

	opts := adapter.RecordOptions()
	if deps.Config.NoteLimit > 0 {
		opts.NoteLimit = deps.Config.NoteLimit
	}
	record := deps.Builder.BuildComplete(result.Metadata, result.Content(), opts)
	_, err = io.WriteString(deps.Stdout, record.String())
	return err
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	dir := deps.Config.ImportDir
	if dir == "" {
		return fmt.Errorf("no import directory: pass --dir or set import_dir in the config file")
	}

	var opts []fs.Option
	if !c.Yes {
		opts = append(opts, fs.WithConfirm(deps.confirm(dir)))
	}
	return deps.run(c.URL, dispatch.ActionImportComplete, fs.NewImporter(dir, opts...))
}

// Run executes the serve command. Pages arrive from the extension with their
// markup, so the fetcher is only used for linked documents.
func (c *ServeCmd) Run(deps *Dependencies) error {
	host := nativemsg.NewHost(deps.Stdin, deps.Stdout, deps.Logger)

	opts := []dispatch.Option{
		dispatch.WithLogger(deps.Logger),
		dispatch.WithClipboardLimit(nativemsg.MaxClipboardText),
	}
	if dir := deps.Config.ImportDir; dir != "" {
		opts = append(opts, dispatch.WithImporter(fs.NewImporter(dir)))
	}
	if deps.Config.NoteLimit > 0 {
		opts = append(opts, dispatch.WithNoteLimit(deps.Config.NoteLimit))
	}
	handler := dispatch.NewHandler(deps.Registry, deps.Builder, host, host, opts...)

	err := host.Serve(deps.Ctx, handler)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// load fetches the page the user points at.
func (deps *Dependencies) load(url string) (*jurisref.Page, error) {
	html, err := deps.PageFetcher.Fetch(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jurisref.ErrorMessage(err))
		return nil, err
	}
	return &jurisref.Page{URL: url, HTML: html}, nil
}

func (deps *Dependencies) adapter(url string) (jurisref.Adapter, error) {
	page, err := deps.load(url)
	if err != nil {
		return nil, err
	}
	a := deps.Registry.Select(page)
	if a == nil {
		return nil, fmt.Errorf("no supported site for %s", url)
	}
	return a, nil
}

// navigate returns a handler bound to the page at url. The clipboard is
// stdout and notifications go to stderr.
func (deps *Dependencies) navigate(url string, opts ...dispatch.Option) (*dispatch.Handler, error) {
	page, err := deps.load(url)
	if err != nil {
		return nil, err
	}

	opts = append([]dispatch.Option{dispatch.WithLogger(deps.Logger)}, opts...)
	if deps.Config.NoteLimit > 0 {
		opts = append(opts, dispatch.WithNoteLimit(deps.Config.NoteLimit))
	}
	handler := dispatch.NewHandler(
		deps.Registry,
		deps.Builder,
		&writerClipboard{w: deps.Stdout},
		&writerNotifier{w: deps.Stderr, verbose: deps.Verbose},
		opts...,
	)
	handler.Navigate(page)
	return handler, nil
}

// run performs one action against the page at url.
func (deps *Dependencies) run(url, action string, importer jurisref.Importer) error {
	var opts []dispatch.Option
	if importer != nil {
		opts = append(opts, dispatch.WithImporter(importer))
	}
	handler, err := deps.navigate(url, opts...)
	if err != nil {
		return err
	}

	resp := handler.Handle(deps.Ctx, dispatch.Request{Action: action})
	if !resp.Success {
		return errors.New(resp.Message)
	}
	return nil
}

// confirm asks on stderr and reads the answer from stdin.
func (deps *Dependencies) confirm(dir string) fs.ConfirmFunc {
	return func(ctx context.Context, record jurisref.Record) bool {
		fmt.Fprintf(deps.Stderr, "Import %s into %s? [y/N] ", fs.RecordPath(record), dir)
		if deps.Stdin == nil {
			return false
		}
		line, err := bufio.NewReader(deps.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/goquery"
	"github.com/fwojciec/jurisref/htmltomarkdown"
	jrhttp "github.com/fwojciec/jurisref/http"
	"github.com/fwojciec/jurisref/ris"
	"github.com/fwojciec/jurisref/rod"
	jrslog "github.com/fwojciec/jurisref/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin feeds the native-messaging host and import confirmations.
	Stdin io.Reader

	// Fetcher overrides the fetcher built from flags. Used by tests.
	Fetcher jurisref.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jurisref"),
		kong.Description("Extract citations for court decisions from Légifrance and Curia"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jurisref --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := LoadConfig(configPath, cli.Config != "")
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set JURISREF_CONFIG or pass --config to use a different file")
		return err
	}
	cfg = cfg.merge(cli)
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Verbose = cli.Verbose

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher, err = newFetcher(cfg)
		if err != nil {
			return err
		}
		defer fetcher.Close()
	}
	if cli.Verbose {
		fetcher = jrslog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	deps.Fetcher = fetcher
	deps.PageFetcher = jrhttp.NewRetryFetcher(fetcher, jrhttp.DefaultRetryDelays(), deps.Logger)

	var opts []goquery.RegistryOption
	opts = append(opts, goquery.WithLogger(deps.Logger))
	if cfg.Markdown {
		opts = append(opts, goquery.WithConverter(htmltomarkdown.NewConverter()))
	}
	var registry jurisref.AdapterRegistry = goquery.NewRegistry(fetcher, opts...)
	if cli.Verbose {
		registry = jrslog.NewLoggingRegistry(registry, deps.Logger)
	}
	deps.Registry = registry
	deps.Builder = ris.NewBuilder()

	return kongCtx.Run(deps)
}

// newFetcher builds the fetcher for pages and linked documents. The browser
// renders pages that need JavaScript; plain HTTP is used otherwise.
func newFetcher(cfg Config) (jurisref.Fetcher, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	if cfg.Browser {
		opts := []rod.Option{rod.WithFetchTimeout(timeout)}
		if cfg.UserAgent != "" {
			opts = append(opts, rod.WithUserAgent(cfg.UserAgent))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}

	opts := []jrhttp.Option{
		jrhttp.WithTimeout(timeout),
		jrhttp.WithLimiter(jrhttp.NewHostLimiter(cfg.RateLimit)),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, jrhttp.WithUserAgent(cfg.UserAgent))
	}
	return jrhttp.NewFetcher(opts...), nil
}

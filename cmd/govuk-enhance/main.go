// Command govuk-enhance runs the component initialisers over an HTML page and
// writes the enhanced markup.
//
// Usage:
//
//	govuk-enhance -in page.html -out enhanced.html \
//	    -config components.yaml -translations cy.yaml -supported
//
// Every flag can also be set through a GOVUK_ENHANCE_* environment variable.
// Flags win over the environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/components"
	"github.com/goliatone/go-govuk-frontend/dom"
	"github.com/goliatone/go-govuk-frontend/sessionstore"
)

type config struct {
	In            string   `env:"GOVUK_ENHANCE_IN"`
	Out           string   `env:"GOVUK_ENHANCE_OUT"`
	Config        string   `env:"GOVUK_ENHANCE_CONFIG"`
	Translations  []string `env:"GOVUK_ENHANCE_TRANSLATIONS" envSeparator:","`
	Locale        string   `env:"GOVUK_ENHANCE_LOCALE"`
	Location      string   `env:"GOVUK_ENHANCE_LOCATION" envDefault:"http://localhost/"`
	Supported     bool     `env:"GOVUK_ENHANCE_SUPPORTED"`
	Strict        bool     `env:"GOVUK_ENHANCE_STRICT"`
	RedisURL      string   `env:"GOVUK_ENHANCE_REDIS_URL"`
	SessionPrefix string   `env:"GOVUK_ENHANCE_SESSION_PREFIX" envDefault:"govuk:session:"`
	LogLevel      string   `env:"GOVUK_ENHANCE_LOG_LEVEL" envDefault:"info"`
	LogFormat     string   `env:"GOVUK_ENHANCE_LOG_FORMAT" envDefault:"console"`
}

type listFlag struct {
	items *[]string
}

func (f listFlag) String() string {
	if f.items == nil {
		return ""
	}
	return strings.Join(*f.items, ",")
}

func (f listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*f.items = append(*f.items, part)
		}
	}
	return nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		reportError(err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		reportError(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, logger); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "govuk-enhance: %v\n", err)
	os.Exit(1)
}

// parseConfig reads the environment first and lets args override it.
func parseConfig(args []string) (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("environment: %w", err)
	}

	fromEnv := cfg.Translations
	cfg.Translations = nil

	fs := flag.NewFlagSet("govuk-enhance", flag.ContinueOnError)
	fs.StringVar(&cfg.In, "in", cfg.In, "input HTML file (default stdin)")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output HTML file (default stdout)")
	fs.StringVar(&cfg.Config, "config", cfg.Config, "YAML or JSON file with per component options")
	fs.Var(listFlag{items: &cfg.Translations}, "translations", "translation catalog file. Repeat or comma separate to add more.")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "catalog locale (default the document lang)")
	fs.StringVar(&cfg.Location, "location", cfg.Location, "document URL used to resolve links")
	fs.BoolVar(&cfg.Supported, "supported", cfg.Supported, "add the govuk-frontend-supported body class before initialising")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "exit with an error when any component fails to initialise")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "redis:// URL for shared session storage")
	fs.StringVar(&cfg.SessionPrefix, "session-prefix", cfg.SessionPrefix, "key prefix for session storage in Redis")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if len(cfg.Translations) == 0 {
		cfg.Translations = fromEnv
	}
	return cfg, nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	if format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = atom
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func run(ctx context.Context, cfg config, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	opts := []dom.Option{
		dom.WithLocation(cfg.Location),
		dom.WithLogger(logger),
	}

	if cfg.RedisURL != "" {
		store, err := sessionstore.Open(ctx, cfg.RedisURL,
			sessionstore.WithPrefix(cfg.SessionPrefix),
			sessionstore.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, dom.WithSessionStorage(store))
	}

	in := stdin
	if cfg.In != "" {
		f, err := os.Open(cfg.In)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	doc, err := dom.Parse(in, opts...)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	if cfg.Supported {
		doc.Body().AddClass(frontend.SupportedClass)
	}

	initCfg, err := loadInitConfig(cfg, doc)
	if err != nil {
		return err
	}

	var failures error
	initCfg.OnError = func(err error, ec frontend.ErrorContext) {
		failures = multierr.Append(failures, err)
		logger.Warn("component not initialised",
			zap.String("component", ec.Component),
			zap.Error(err),
		)
	}

	instances := components.InitAll(doc, initCfg)
	logger.Info("document enhanced",
		zap.Int("components", instances.Len()),
		zap.Int("failures", len(multierr.Errors(failures))),
	)

	if err := writeDocument(cfg.Out, stdout, doc); err != nil {
		return err
	}

	if cfg.Strict && failures != nil {
		return fmt.Errorf("%d components failed: %w", len(multierr.Errors(failures)), failures)
	}
	return nil
}

func loadInitConfig(cfg config, doc *dom.Document) (components.InitConfig, error) {
	var initCfg components.InitConfig
	if cfg.Config != "" {
		data, err := os.ReadFile(cfg.Config)
		if err != nil {
			return initCfg, err
		}
		if initCfg, err = components.ParseInitConfig(data); err != nil {
			return initCfg, err
		}
	}

	if len(cfg.Translations) == 0 {
		return initCfg, nil
	}

	translations, err := frontend.LoadCatalogFiles(cfg.Translations...)
	if err != nil {
		return initCfg, err
	}
	locale := frontend.ResolveLocale(doc.DocumentElement(), cfg.Locale)
	store := frontend.NewCatalogStore(translations)
	return initCfg.WithTranslations(store.Resolve(locale)), nil
}

func writeDocument(path string, stdout io.Writer, doc *dom.Document) (err error) {
	if path == "" {
		return doc.Render(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := doc.Render(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/authorview/internal/app"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the YAML file the configuration was read from, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAPIURL      = "AUTHORVIEW_API_URL"
	envTimeout     = "AUTHORVIEW_TIMEOUT"
	envMinInterval = "AUTHORVIEW_MIN_INTERVAL"
	envUser        = "AUTHORVIEW_USER"
	envWidth       = "AUTHORVIEW_WIDTH"
	envHeight      = "AUTHORVIEW_HEIGHT"
	envShowFooter  = "AUTHORVIEW_FOOTER"
	envMarkdown    = "AUTHORVIEW_MARKDOWN"
	envTrace       = "AUTHORVIEW_TRACE"
	envLogFile     = "AUTHORVIEW_LOG_FILE"
	envConfig      = "AUTHORVIEW_CONFIG"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMinInterval = 100 * time.Millisecond
	defaultLogFile     = "authorview.log"
)

// options is the flat set of settings shared by every source.
type options struct {
	APIURL      string        `yaml:"api_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MinInterval time.Duration `yaml:"min_interval"`
	User        int           `yaml:"user"`
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Footer      bool          `yaml:"footer"`
	Markdown    bool          `yaml:"markdown"`
	Trace       bool          `yaml:"trace"`
	LogFile     string        `yaml:"log_file"`
}

func defaults() options {
	return options{
		Timeout:     defaultTimeout,
		MinInterval: defaultMinInterval,
		LogFile:     defaultLogFile,
	}
}

// Flags returns a flag set describing every option. Defaults are applied
// later so an unset flag never shadows the environment or the config file.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("authorview", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("api-url", "", "base URL of the REST API (required)")
	fs.Duration("timeout", defaultTimeout, "per-request timeout")
	fs.Duration("min-interval", defaultMinInterval, "minimum spacing between API requests")
	fs.Int("user", 0, "author id to select once the author list loads")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", false, "enable footer hint row")
	fs.Bool("markdown", false, "render post bodies as markdown")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", defaultLogFile, "path to the log file")
	fs.StringP("config", "c", "", "path to a YAML config file")
	return fs
}

// LoadArgs parses args and resolves configuration with precedence
// flag > environment > config file > default.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// FromFlags resolves configuration from an already parsed flag set built by
// Flags.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	opts := defaults()

	path := env[envConfig]
	if fs.Changed("config") {
		path, _ = fs.GetString("config")
	}
	if path != "" {
		if err := opts.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := opts.applyEnv(env); err != nil {
		return Config{}, err
	}
	if err := opts.applyFlags(fs); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			APIURL:      strings.TrimSpace(opts.APIURL),
			Timeout:     opts.Timeout,
			MinInterval: opts.MinInterval,
			User:        opts.User,
			Width:       opts.Width,
			Height:      opts.Height,
			ShowFooter:  opts.Footer,
			Markdown:    opts.Markdown,
		},
		Logging: Logging{
			FilePath: opts.LogFile,
			Trace:    opts.Trace,
		},
		File: path,
		Flags: map[string]string{
			"apiURL":      opts.APIURL,
			"timeout":     opts.Timeout.String(),
			"minInterval": opts.MinInterval.String(),
			"user":        strconv.Itoa(opts.User),
			"width":       strconv.Itoa(opts.Width),
			"height":      strconv.Itoa(opts.Height),
			"footer":      strconv.FormatBool(opts.Footer),
			"markdown":    strconv.FormatBool(opts.Markdown),
			"trace":       strconv.FormatBool(opts.Trace),
			"logFile":     opts.LogFile,
		},
		Args: fs.Args(),
	}
	return cfg, nil
}

func (o *options) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (o *options) applyEnv(env map[string]string) error {
	var errs []error
	setString(env, envAPIURL, &o.APIURL)
	setString(env, envLogFile, &o.LogFile)
	errs = append(errs,
		setDuration(env, envTimeout, &o.Timeout),
		setDuration(env, envMinInterval, &o.MinInterval),
		setInt(env, envUser, &o.User),
		setInt(env, envWidth, &o.Width),
		setInt(env, envHeight, &o.Height),
		setBool(env, envShowFooter, &o.Footer),
		setBool(env, envMarkdown, &o.Markdown),
		setBool(env, envTrace, &o.Trace),
	)
	return errors.Join(errs...)
}

func (o *options) applyFlags(fs *pflag.FlagSet) error {
	var err error
	// Visit only walks flags set on the command line.
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "api-url":
			o.APIURL = f.Value.String()
		case "log-file":
			o.LogFile = f.Value.String()
		case "timeout":
			o.Timeout, err = fs.GetDuration(f.Name)
		case "min-interval":
			o.MinInterval, err = fs.GetDuration(f.Name)
		case "user":
			o.User, err = fs.GetInt(f.Name)
		case "width":
			o.Width, err = fs.GetInt(f.Name)
		case "height":
			o.Height, err = fs.GetInt(f.Name)
		case "footer":
			o.Footer, err = fs.GetBool(f.Name)
		case "markdown":
			o.Markdown, err = fs.GetBool(f.Name)
		case "trace":
			o.Trace, err = fs.GetBool(f.Name)
		}
	})
	return err
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func setString(env map[string]string, key string, dst *string) {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setInt(env map[string]string, key string, dst *int) error {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func setBool(env map[string]string, key string, dst *bool) error {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func setDuration(env map[string]string, key string, dst *time.Duration) error {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	raw := cfg.App.APIURL
	if raw == "" {
		return fmt.Errorf("api url is required (--api-url or %s)", envAPIURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q: want http(s)://host", raw)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout)
	}
	if cfg.App.MinInterval < 0 {
		return fmt.Errorf("min-interval must be >= 0 (got %s)", cfg.App.MinInterval)
	}
	if cfg.App.User < 0 {
		return fmt.Errorf("user must be >= 0 (got %d)", cfg.App.User)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}

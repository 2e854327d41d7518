package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// configAliases maps batch option keys to the flags they configure.
var configAliases = map[string]string{
	"delaySeconds":   "delay",
	"timeoutSeconds": "timeout",
	"userAgent":      "user-agent",
}

// LoadConfig reads a flat YAML mapping of flag names to values. The keys
// delaySeconds, timeoutSeconds and userAgent are accepted as well, with the
// durations given in seconds.
func LoadConfig(r io.Reader) (kong.Resolver, error) {
	raw := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	values := make(map[string]string, len(raw))
	for key, v := range raw {
		name, seconds := key, false
		if alias, ok := configAliases[key]; ok {
			name = alias
			seconds = strings.HasSuffix(key, "Seconds")
		}

		s, err := configValue(v, seconds)
		if err != nil {
			return nil, fmt.Errorf("config key %q: %w", key, err)
		}
		values[name] = s
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

// configValue renders a YAML scalar as a flag value.
func configValue(v any, seconds bool) (string, error) {
	if !seconds {
		switch v := v.(type) {
		case []any, map[string]any:
			return "", fmt.Errorf("expected a scalar value")
		case nil:
			return "", nil
		default:
			return fmt.Sprint(v), nil
		}
	}

	var secs float64
	switch v := v.(type) {
	case int:
		secs = float64(v)
	case float64:
		secs = v
	default:
		return "", fmt.Errorf("expected a number of seconds, got %v", v)
	}
	if secs < 0 {
		return "", fmt.Errorf("negative duration %v", secs)
	}
	return time.Duration(secs * float64(time.Second)).String(), nil
}

// newLogger builds the CLI logger. Text goes to stderr; with a log file set,
// JSON records go to stderr and a rotated file.
func newLogger(stderr io.Writer, verbose bool, logFile string) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if logFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
	w := io.MultiWriter(stderr, rotator)
	return slog.New(slog.NewJSONHandler(w, opts)), func() {
		if err := rotator.Close(); err != nil {
			fmt.Fprintf(stderr, "close log file: %v\n", err)
		}
	}
}

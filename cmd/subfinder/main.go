// Command subfinder resolves subtitle download descriptors for a local video
// file and prints them as JSON on stdout.
//
//	subfinder [-provider name] [-languages Chn,Eng] [-formats srt,ass] video.mkv
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
	"github.com/KennethWKZ/subfinder/internal/cache"
	"github.com/KennethWKZ/subfinder/internal/client"
	"github.com/KennethWKZ/subfinder/internal/config"
	"github.com/KennethWKZ/subfinder/internal/metrics"
	"github.com/KennethWKZ/subfinder/internal/provider"
	"github.com/KennethWKZ/subfinder/internal/providers"
)

// Exit codes per error kind, so scripts can distinguish failure causes.
const (
	exitUsage             = 2
	exitInvalidFile       = 3
	exitUnsupportedInput  = 4
	exitSearchFailed      = 5
	exitProviderViolation = 6
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	providerName := flag.String("provider", provider.DefaultName, "subtitle provider to query")
	languagesFlag := flag.String("languages", "", "comma-separated languages (empty: provider default)")
	formatsFlag := flag.String("formats", "", "comma-separated subtitle formats (empty: all supported)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: subfinder [-provider name] [-languages Chn,Eng] [-formats srt,ass] <video file>")
		return exitUsage
	}
	videoPath := flag.Arg(0)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Optional Prometheus metrics endpoint for long searches.
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer("", cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queryCache := buildCache(cfg, logger)
	if queryCache != nil {
		defer queryCache.Close()
	}

	if err := providers.RegisterBuiltins(); err != nil {
		logger.Error().Err(err).Msg("Failed to register built-in providers")
		sentry.CaptureException(err)
		return exitProviderViolation
	}

	p, err := provider.New(*providerName, provider.Options{
		Config:     cfg,
		HTTPClient: client.New(cfg),
		Cache:      queryCache,
	})
	if err != nil {
		logger.Error().Err(err).Str("provider", *providerName).Msg("Failed to resolve provider")
		sentry.CaptureException(err)
		if errors.Is(err, &apperrors.ErrProviderContract{}) {
			return exitProviderViolation
		}
		return exitUsage
	}

	descriptors, err := p.SearchSubtitles(ctx, videoPath, splitList(*languagesFlag), splitList(*formatsFlag))
	if err != nil {
		logger.Error().Err(err).Str("video", videoPath).Msg("Search failed")
		sentry.CaptureException(err)
		return exitCodeFor(err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(descriptors); err != nil {
		logger.Error().Err(err).Msg("Failed to encode descriptors")
		return 1
	}
	return 0
}

// buildCache creates the configured query cache. Cache failures are not
// fatal: searches simply skip caching.
func buildCache(cfg *config.Config, logger zerolog.Logger) cache.Cache {
	ttl := time.Hour
	if cfg.Cache.TTL != "" {
		if parsed, err := time.ParseDuration(cfg.Cache.TTL); err != nil {
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 1h")
		} else {
			ttl = parsed
		}
	}

	c, err := cache.New(cfg.Cache.Backend, cache.BackendConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        cacheLogger{logger: logger},
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Group:         "queries",
	})
	if err != nil {
		logger.Warn().Err(err).Str("backend", cfg.Cache.Backend).Msg("Failed to create query cache, continuing without caching")
		return nil
	}
	return c
}

// cacheLogger adapts zerolog to the cache.Logger interface.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// splitList parses a comma-separated flag value into a slice, dropping empty
// tokens. An empty value yields nil so providers apply their defaults.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, token := range strings.Split(value, ",") {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// exitCodeFor maps the core error taxonomy to distinct exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, &apperrors.ErrInvalidFile{}):
		return exitInvalidFile
	case errors.Is(err, &apperrors.ErrLanguageNotSupported{}),
		errors.Is(err, &apperrors.ErrFormatNotSupported{}):
		return exitUnsupportedInput
	case errors.Is(err, &apperrors.ErrSearchQuery{}):
		return exitSearchFailed
	case errors.Is(err, &apperrors.ErrProviderContract{}):
		return exitProviderViolation
	default:
		return 1
	}
}

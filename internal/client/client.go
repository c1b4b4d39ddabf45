// Package client builds the HTTP client injected into subtitle providers.
// Providers never construct their own transport: proxy support, retries,
// timeouts, and response decompression all live here.
package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"

	"github.com/KennethWKZ/subfinder/internal/config"
)

// New creates an *http.Client from config: cloned default transport with
// optional proxy, a bounded retry policy for transient failures, and
// transparent response decompression (gzip, brotli, zstd).
func New(cfg *config.Config) *http.Client {
	// Parse timeout duration
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Set up base transport with optional proxy.
	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			// Log error but continue without proxy
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			// Override only the Proxy field
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Wrap transport with compression support (gzip, brotli, zstd),
	// then with retries around the whole request including decompression.
	var transport http.RoundTripper = newCompressionTransport(baseTransport)

	retries := cfg.ClientRetries
	if retries > 0 {
		retryPolicy := failsafehttp.NewRetryPolicyBuilder().
			WithBackoff(500*time.Millisecond, 5*time.Second).
			WithMaxRetries(retries).
			Build()
		transport = failsafehttp.NewRoundTripper(transport, retryPolicy)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

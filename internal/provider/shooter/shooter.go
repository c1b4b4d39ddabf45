// Package shooter implements the fingerprint-based reference provider
// backed by the shooter.cn subtitle database.
package shooter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
	"github.com/KennethWKZ/subfinder/internal/cache"
	"github.com/KennethWKZ/subfinder/internal/config"
	"github.com/KennethWKZ/subfinder/internal/fingerprint"
	"github.com/KennethWKZ/subfinder/internal/metrics"
	"github.com/KennethWKZ/subfinder/internal/models"
	"github.com/KennethWKZ/subfinder/internal/provider"
)

// Name is the canonical registry name of the shooter provider.
const Name = "shooter"

const defaultAPIURL = "https://www.shooter.cn/api/subapi.php"

var capabilities = provider.Capabilities{
	Languages: []string{"Chn", "Eng"},
	Formats:   []string{"ass", "srt"},
}

// subInfo is one raw response item from the shooter API.
type subInfo struct {
	Desc  string    `json:"Desc"`
	Delay int       `json:"Delay"`
	Files []subFile `json:"Files"`
}

// subFile is one downloadable file entry inside a response item.
type subFile struct {
	Ext  string `json:"Ext"`
	Link string `json:"Link"`
}

// Shooter queries the shooter.cn API with a content fingerprint of the video
// file and normalizes the per-language responses into descriptors.
type Shooter struct {
	apiURL     string
	httpClient *http.Client
	cache      cache.Cache
}

// New creates a Shooter from the injected collaborators. It satisfies
// provider.Factory.
func New(opts provider.Options) (provider.Provider, error) {
	apiURL := defaultAPIURL
	if opts.Config != nil && opts.Config.ShooterAPIURL != "" {
		apiURL = opts.Config.ShooterAPIURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Shooter{
		apiURL:     apiURL,
		httpClient: httpClient,
		cache:      opts.Cache,
	}, nil
}

// Name returns the canonical registry name.
func (s *Shooter) Name() string {
	return Name
}

// Capabilities returns the declared language and format sets.
func (s *Shooter) Capabilities() provider.Capabilities {
	return capabilities
}

// SearchSubtitles implements provider.Provider: validate, fingerprint, one
// query per requested language, then normalize the combined responses.
func (s *Shooter) SearchSubtitles(ctx context.Context, videoPath string, languages, formats []string) ([]models.SubtitleDescriptor, error) {
	logger := config.GetLogger()

	languages, formats, err := provider.ValidateRequest(Name, capabilities, languages, formats)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(Name, "invalid_request").Inc()
		return nil, err
	}

	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(Name, "error").Inc()
		return nil, fmt.Errorf("resolve video path: %w", err)
	}

	hash, err := fingerprint.Compute(absPath)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(Name, "error").Inc()
		return nil, err
	}

	logger.Debug().
		Str("video", absPath).
		Str("filehash", hash).
		Strs("languages", languages).
		Msg("Querying shooter API per language")

	responses := make(map[string][]subInfo, len(languages))
	for _, lang := range languages {
		items, err := s.queryLanguage(ctx, hash, filepath.Base(absPath), lang)
		if err != nil {
			metrics.SearchesTotal.WithLabelValues(Name, "error").Inc()
			return nil, apperrors.NewSearchQueryError(Name, lang, err)
		}
		responses[lang] = items
	}

	descriptors := normalize(absPath, languages, formats, responses)

	logger.Info().
		Str("video", absPath).
		Int("descriptors", len(descriptors)).
		Msg("Search completed")
	metrics.SearchesTotal.WithLabelValues(Name, "success").Inc()
	return descriptors, nil
}

// queryLanguage issues one POST form query for a single language and decodes
// the JSON response. Responses are cached per (fingerprint, language) so
// repeated searches of an unchanged file skip the network; caching is
// best-effort and never fails the query.
func (s *Shooter) queryLanguage(ctx context.Context, hash, pathHint, lang string) ([]subInfo, error) {
	cacheKey := hash + ";" + lang
	if s.cache != nil {
		if raw, ok := s.cache.Get(cacheKey); ok {
			var items []subInfo
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
			// Undecodable cache entry: fall through to the network.
		}
	}

	// Fresh form values per language; sharing one payload across the loop
	// would risk field leakage between iterations.
	form := url.Values{
		"filehash": {hash},
		"pathinfo": {pathHint},
		"format":   {"json"},
		"lang":     {lang},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", config.GetUserAgent())

	metrics.SearchQueriesTotal.WithLabelValues(Name, lang).Inc()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var items []subInfo
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, body)
	}
	return items, nil
}

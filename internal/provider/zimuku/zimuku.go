// Package zimuku implements a keyword-based subtitle provider that scrapes
// the zimuku search pages. It exists alongside the fingerprint-based shooter
// provider to exercise the registry's plugin point with a second source.
package zimuku

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
	"github.com/KennethWKZ/subfinder/internal/config"
	"github.com/KennethWKZ/subfinder/internal/metrics"
	"github.com/KennethWKZ/subfinder/internal/models"
	"github.com/KennethWKZ/subfinder/internal/provider"
)

// Name is the canonical registry name of the zimuku provider.
const Name = "zimuku"

const defaultDomain = "https://zimuku.org"

var capabilities = provider.Capabilities{
	Languages: []string{"Chn", "Eng"},
	Formats:   []string{"ass", "srt", "sub"},
}

// Zimuku searches zimuku by keyword (derived from the video filename) and
// scrapes the result rows for download links.
type Zimuku struct {
	domain     string
	httpClient *http.Client
}

// New creates a Zimuku from the injected collaborators. It satisfies
// provider.Factory.
func New(opts provider.Options) (provider.Provider, error) {
	domain := defaultDomain
	if opts.Config != nil && opts.Config.ZimukuDomain != "" {
		domain = opts.Config.ZimukuDomain
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Zimuku{
		domain:     strings.TrimRight(domain, "/"),
		httpClient: httpClient,
	}, nil
}

// Name returns the canonical registry name.
func (z *Zimuku) Name() string {
	return Name
}

// Capabilities returns the declared language and format sets.
func (z *Zimuku) Capabilities() provider.Capabilities {
	return capabilities
}

// SearchSubtitles implements provider.Provider. The video file must exist
// (its name is the search keyword), but no fingerprint is computed: zimuku
// is searched by keyword, one query per requested language.
func (z *Zimuku) SearchSubtitles(ctx context.Context, videoPath string, languages, formats []string) ([]models.SubtitleDescriptor, error) {
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
	if _, err := os.Stat(absPath); err != nil {
		metrics.SearchesTotal.WithLabelValues(Name, "error").Inc()
		return nil, fmt.Errorf("stat video file: %w", err)
	}

	keyword := searchKeyword(absPath)
	logger.Debug().
		Str("video", absPath).
		Str("keyword", keyword).
		Strs("languages", languages).
		Msg("Searching zimuku per language")

	responses := make(map[string][]subtitleRow, len(languages))
	for _, lang := range languages {
		rows, err := z.queryLanguage(ctx, keyword, lang)
		if err != nil {
			metrics.SearchesTotal.WithLabelValues(Name, "error").Inc()
			return nil, apperrors.NewSearchQueryError(Name, lang, err)
		}
		responses[lang] = rows
	}

	descriptors := z.normalize(absPath, languages, formats, responses)

	logger.Info().
		Str("video", absPath).
		Int("descriptors", len(descriptors)).
		Msg("Search completed")
	metrics.SearchesTotal.WithLabelValues(Name, "success").Inc()
	return descriptors, nil
}

// subtitleRow is one scraped search result row.
type subtitleRow struct {
	language string
	link     string
	ext      string
}

// queryLanguage fetches and parses one search result page for a single language.
func (z *Zimuku) queryLanguage(ctx context.Context, keyword, lang string) ([]subtitleRow, error) {
	endpoint := fmt.Sprintf("%s/search?%s", z.domain, url.Values{
		"q":    {keyword},
		"lang": {lang},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	metrics.SearchQueriesTotal.WithLabelValues(Name, lang).Inc()
	resp, err := z.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned status %d", resp.StatusCode)
	}

	// Zimuku pages are not reliably UTF-8; convert before parsing.
	utf8Body, err := newUTF8Reader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("detect page charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var rows []subtitleRow
	doc.Find("tr.sublist-item").Each(func(i int, row *goquery.Selection) {
		rowLang := strings.TrimSpace(row.Find("td.lang").Text())
		if rowLang != lang {
			return
		}

		link := row.Find("a.down").First()
		href, exists := link.Attr("href")
		if !exists || href == "" {
			return
		}

		absLink := z.resolveLink(href)
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(href), "."))
		if absLink == "" || ext == "" {
			return
		}

		rows = append(rows, subtitleRow{language: rowLang, link: absLink, ext: ext})
	})

	return rows, nil
}

// normalize applies the shared dedup policy: at most one descriptor per
// (language, format) pair, first occurrence in page order wins.
func (z *Zimuku) normalize(videoPath string, languages, formats []string, responses map[string][]subtitleRow) []models.SubtitleDescriptor {
	wanted := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		wanted[f] = struct{}{}
	}

	descriptors := make([]models.SubtitleDescriptor, 0, len(languages))
	for _, lang := range languages {
		emitted := make(map[string]struct{}, len(formats))
		for _, row := range responses[lang] {
			if _, ok := wanted[row.ext]; !ok {
				continue
			}
			if _, ok := emitted[row.ext]; ok {
				continue
			}
			descriptors = append(descriptors, models.SubtitleDescriptor{
				Link:          row.link,
				Language:      lang,
				Format:        row.ext,
				SuggestedName: provider.SuggestedName(videoPath, lang, row.ext),
			})
			emitted[row.ext] = struct{}{}
		}
	}
	return descriptors
}

// resolveLink turns a possibly relative scraped href into an absolute URL on
// the configured domain.
func (z *Zimuku) resolveLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return z.domain + href
}

// searchKeyword derives the search keyword from the video filename: the
// extension is dropped and scene-style dots become spaces.
func searchKeyword(videoPath string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(stem, ".", " ")
}

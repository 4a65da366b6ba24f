package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIBaseURL  = "https://feiertage-api.de/api/"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// APISource implements Source using the feiertage-api.de JSON API
type APISource struct {
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
	region     string
	cache      map[int]*cachedSet
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedSet struct {
	data      Set
	fetchedAt time.Time
}

// apiHoliday represents one holiday entry of the feiertage-api.de response
type apiHoliday struct {
	Datum   string `json:"datum"`   // "2022-10-31"
	Hinweis string `json:"hinweis"` // free-text note
}

// NewAPISource creates a new APISource instance for the given federal state
func NewAPISource(baseURL, region string, cacheTTL time.Duration, logger *zap.Logger) *APISource {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if region == "" {
		region = "SN"
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &APISource{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		baseURL:  baseURL,
		region:   region,
		cache:    make(map[int]*cachedSet),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns all public holidays of the given year
func (a *APISource) Holidays(year int) (Set, error) {
	a.cacheMu.RLock()
	if cached, ok := a.cache[year]; ok {
		if time.Since(cached.fetchedAt) < a.cacheTTL {
			a.cacheMu.RUnlock()
			a.logger.Debug("Using cached holidays", zap.Int("year", year))
			return cached.data, nil
		}
	}
	a.cacheMu.RUnlock()

	set, err := a.fetchYear(year)
	if err != nil {
		return nil, err
	}

	a.cacheMu.Lock()
	a.cache[year] = &cachedSet{data: set, fetchedAt: time.Now()}
	a.cacheMu.Unlock()

	return set, nil
}

// fetchYear fetches the holidays of one year from the API
func (a *APISource) fetchYear(year int) (Set, error) {
	url := fmt.Sprintf("%s?jahr=%d&nur_land=%s", strings.TrimRight(a.baseURL, "?"), year, a.region)

	a.logger.Debug("Fetching holidays from API",
		zap.Int("year", year),
		zap.String("region", a.region))

	resp, err := a.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	set, err := a.parseResponse(body)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Holidays fetched from API",
		zap.Int("year", year),
		zap.String("region", a.region),
		zap.Int("count", len(set)))

	return set, nil
}

// parseResponse decodes a feiertage-api.de JSON document into a Set
func (a *APISource) parseResponse(body []byte) (Set, error) {
	var raw map[string]apiHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	set := make(Set)
	for name, entry := range raw {
		date, err := time.Parse("2006-01-02", entry.Datum)
		if err != nil {
			a.logger.Warn("Skipping holiday with unparseable date",
				zap.String("name", name),
				zap.String("date", entry.Datum))
			continue
		}
		set.Add(date, name)
	}

	return set, nil
}

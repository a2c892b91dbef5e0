package holidays

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

const (
	nagerBaseURL       = "https://date.nager.at"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// NagerProvider implements Provider using the date.nager.at public
// holiday API
type NagerProvider struct {
	httpClient *http.Client
	logger     *zap.Logger
	country    string
	baseURL    string
	cache      map[int]*cachedYear
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedYear struct {
	holidays  []Holiday
	fetchedAt time.Time
}

// nagerHoliday represents one entry of the date.nager.at response
type nagerHoliday struct {
	Date        string `json:"date"` // "2026-01-01"
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

// NewNagerProvider creates a new NagerProvider instance
func NewNagerProvider(country string, cacheTTL time.Duration, logger *zap.Logger) *NagerProvider {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &NagerProvider{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		country:  country,
		baseURL:  nagerBaseURL,
		cache:    make(map[int]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// HolidaysForYear returns the public holidays of the year, using a
// per-year cache with TTL
func (p *NagerProvider) HolidaysForYear(year int) ([]Holiday, error) {
	p.cacheMu.RLock()
	if cached, ok := p.cache[year]; ok {
		if time.Since(cached.fetchedAt) < p.cacheTTL {
			p.cacheMu.RUnlock()
			p.logger.Debug("Using cached holidays",
				zap.Int("year", year),
				zap.Int("count", len(cached.holidays)))
			return cached.holidays, nil
		}
	}
	p.cacheMu.RUnlock()

	list, err := p.fetchYear(year)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[year] = &cachedYear{
		holidays:  list,
		fetchedAt: time.Now(),
	}
	p.cacheMu.Unlock()

	return list, nil
}

// fetchYear fetches one year of holidays from the API
func (p *NagerProvider) fetchYear(year int) ([]Holiday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", p.baseURL, year, p.country)

	p.logger.Debug("Fetching holidays from date.nager.at",
		zap.String("url", url),
		zap.Int("year", year),
		zap.String("country", p.country))

	resp, err := p.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	list, err := p.parseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	p.logger.Info("Holidays fetched from API",
		zap.Int("year", year),
		zap.String("country", p.country),
		zap.Int("count", len(list)))

	return list, nil
}

// parseResponse decodes the API JSON into Holiday values. Entries with
// unparseable dates are skipped with a warning rather than failing the
// whole year.
func (p *NagerProvider) parseResponse(body []byte) ([]Holiday, error) {
	var raw []nagerHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	list := make([]Holiday, 0, len(raw))
	for _, entry := range raw {
		date, err := dateutil.ParseDate(entry.Date)
		if err != nil {
			p.logger.Warn("Failed to parse holiday date, skipping",
				zap.String("date", entry.Date),
				zap.String("name", entry.Name),
				zap.Error(err))
			continue
		}

		name := entry.LocalName
		if name == "" {
			name = entry.Name
		}

		list = append(list, Holiday{Date: date, Name: name})
	}

	sortHolidays(list)

	return list, nil
}

// ClearCache clears the year cache
func (p *NagerProvider) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.cache = make(map[int]*cachedYear)
	p.logger.Info("Holiday cache cleared")
}

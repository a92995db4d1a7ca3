package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"SmartMoneyIndex/internal/model"
)

const defaultFredBaseURL = "https://api.stlouisfed.org"

// ErrMissingAPIKey is surfaced to the operator when no FRED key is
// configured.
var ErrMissingAPIKey = errors.New("fred: api key not configured")

// FredProvider implements MacroProvider using the FRED observations API.
type FredProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFredProvider creates a macro provider with optional proxy support.
func NewFredProvider(baseURL, apiKey, proxyURL string) *FredProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultFredBaseURL
	}
	return &FredProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FredProvider) Name() string { return "fred" }

// fredObservations is the expected JSON shape from the FRED API.
// Missing observations carry the value ".".
type fredObservations struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// FetchSeries fetches one FRED series over the given window.
func (f *FredProvider) FetchSeries(ctx context.Context, seriesID string, start, end time.Time) (model.Series, error) {
	if f.APIKey == "" {
		return model.Series{}, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", f.APIKey)
	q.Set("file_type", "json")
	q.Set("observation_start", start.Format("2006-01-02"))
	q.Set("observation_end", end.Format("2006-01-02"))
	endpoint := fmt.Sprintf("%s/fred/series/observations?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Series{}, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Series{}, fmt.Errorf("fred fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Series{}, fmt.Errorf("fred read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Series{}, fmt.Errorf("fred %s: status %d, body: %s", seriesID, resp.StatusCode, string(body))
	}

	var obs fredObservations
	if err := json.Unmarshal(body, &obs); err != nil {
		return model.Series{}, fmt.Errorf("fred decode: %w", err)
	}
	if obs.ErrorCode != 0 {
		return model.Series{}, fmt.Errorf("fred api error %d: %s", obs.ErrorCode, obs.ErrorMessage)
	}

	s := model.Series{Name: seriesID, FetchedAt: time.Now()}
	for _, o := range obs.Observations {
		if o.Value == "." {
			continue // market holiday, no observation
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		t, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			continue
		}
		s.Points = append(s.Points, model.Point{Time: t, Value: v})
	}
	if len(s.Points) == 0 {
		return model.Series{}, fmt.Errorf("fred %s: %w", seriesID, ErrNoData)
	}
	return s, nil
}

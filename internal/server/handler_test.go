package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SmartMoneyIndex/internal/cache"
	"SmartMoneyIndex/internal/loader"
	"SmartMoneyIndex/internal/model"
	"SmartMoneyIndex/internal/provider"
)

func newTestServer(t *testing.T, macro provider.MacroProvider, quotes provider.QuoteProvider) *Server {
	t.Helper()
	l := loader.New(macro, quotes, cache.NewMemory(), time.Hour, nil, nil)
	return New(NewHandler(l, 4.5), Options{Addr: ":0"})
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echoContentType, "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func TestScore_OK(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	rec := doRequest(srv, http.MethodGet, "/api/score", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var card model.ScoreCard
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(card.Components) != 5 {
		t.Errorf("expected 5 components, got %d", len(card.Components))
	}
	if card.Total < 0 || card.Total > 100 {
		t.Errorf("total out of range: %d", card.Total)
	}
}

func TestScore_CashParam(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	rec := doRequest(srv, http.MethodGet, "/api/score?cash=5.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var card model.ScoreCard
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatal(err)
	}
	for _, c := range card.Components {
		if c.Name == "机构现金水平" && c.Points != 30 {
			t.Errorf("cash 5.5 should score 30 points, got %d", c.Points)
		}
	}

	if rec := doRequest(srv, http.MethodGet, "/api/score?cash=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed cash, got %d", rec.Code)
	}
}

func TestScore_EmptySeriesSurfacesHint(t *testing.T) {
	srv := newTestServer(t,
		&provider.MockMacroProvider{Err: errors.New("network down")},
		&provider.MockQuoteProvider{})

	rec := doRequest(srv, http.MethodGet, "/api/score", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var e apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.Error, model.SeriesRealYield) {
		t.Errorf("error should name the empty series: %q", e.Error)
	}
	if e.Hint == "" {
		t.Error("expected an operator hint")
	}
}

func TestSnapshot_OK(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	rec := doRequest(srv, http.MethodGet, "/api/snapshot", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp snapshotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Readings) < 6 {
		t.Errorf("expected at least 6 readings, got %d", len(resp.Readings))
	}
}

func TestSeriesByName(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	rec := doRequest(srv, http.MethodGet, "/api/series/"+model.SeriesMomentumRatio+"?limit=30", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var s model.Series
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Len() == 0 || s.Len() > 30 {
		t.Errorf("expected 1..30 points, got %d", s.Len())
	}

	if rec := doRequest(srv, http.MethodGet, "/api/series/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown series, got %d", rec.Code)
	}
}

func TestAdvice_OK(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	body := `{"cash_level": 5.5, "north_flow": "大幅流入", "sector_crowding": "极其拥挤"}`
	rec := doRequest(srv, http.MethodPost, "/api/advice", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp adviceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Advice.Light != model.LightRed {
		t.Errorf("expected red light for extreme crowding, got %q", resp.Advice.Light)
	}
	if len(resp.Advice.Advisories) == 0 {
		t.Error("expected advisories")
	}
}

func TestAdvice_ValidationRejectsBadEnum(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	rec := doRequest(srv, http.MethodPost, "/api/advice", `{"north_flow": "sideways"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown flow trend, got %d", rec.Code)
	}
}

func TestRequestMetrics_CountErrorResponsesByFinalStatus(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})

	if rec := doRequest(srv, http.MethodGet, "/definitely-not-a-route", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec := doRequest(srv, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics endpoint: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `status="404"`) {
		t.Error("requests that end in an error should be counted with their committed status")
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &provider.MockMacroProvider{}, &provider.MockQuoteProvider{})
	if rec := doRequest(srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

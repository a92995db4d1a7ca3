package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFredProvider_FetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("series_id"); got != "DFII10" {
			t.Errorf("unexpected series_id %q", got)
		}
		if r.URL.Query().Get("api_key") == "" {
			t.Error("missing api_key")
		}
		w.Write([]byte(`{"observations":[
			{"date":"2026-08-25","value":"1.72"},
			{"date":"2026-08-26","value":"."},
			{"date":"2026-08-27","value":"1.75"}
		]}`))
	}))
	defer srv.Close()

	f := NewFredProvider(srv.URL, "test-key", "")
	s, err := f.FetchSeries(context.Background(), "DFII10", time.Now().AddDate(-1, 0, 0), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 observations (holiday skipped), got %d", s.Len())
	}
	if v, _ := s.Last(); v != 1.75 {
		t.Errorf("expected last value 1.75, got %v", v)
	}
}

func TestFredProvider_MissingAPIKey(t *testing.T) {
	f := NewFredProvider("", "", "")
	_, err := f.FetchSeries(context.Background(), "DFII10", time.Now(), time.Now())
	if err != ErrMissingAPIKey {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestFredProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error_code":400,"error_message":"Bad Request"}`))
	}))
	defer srv.Close()

	f := NewFredProvider(srv.URL, "test-key", "")
	if _, err := f.FetchSeries(context.Background(), "NOPE", time.Now(), time.Now()); err == nil {
		t.Error("expected error for fred error payload")
	}
}

func TestYahooProvider_FetchDailyCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1756080000,1756166400,1756252800],
			"indicators":{"quote":[{"close":[97.5,null,98.2]}]}
		}]}}`))
	}))
	defer srv.Close()

	f := NewYahooProvider(srv.URL, "")
	s, err := f.FetchDailyCloses(context.Background(), "DX-Y.NYB", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected null bar skipped, got %d points", s.Len())
	}
	if v, _ := s.Last(); v != 98.2 {
		t.Errorf("expected last close 98.2, got %v", v)
	}
}

func TestYahooProvider_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[]}}`))
	}))
	defer srv.Close()

	f := NewYahooProvider(srv.URL, "")
	if _, err := f.FetchDailyCloses(context.Background(), "HG=F", 30); err == nil {
		t.Error("expected error for empty result")
	}
}

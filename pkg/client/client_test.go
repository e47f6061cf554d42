package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_SendsRequestAndDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}

		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "wireless headphones" || req.Budget != 200 {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Query:        req.Query,
			Budget:       req.Budget,
			TotalResults: 1,
			Results: []SearchResult{{
				ProductID:      "p1",
				Title:          "Wireless Headphones",
				Price:          149.99,
				CompositeScore: 0.87,
				Explanation:    "Matches your intent (90.0%) and is €50.01 under budget.",
			}},
			Stage: "narrow-fallback",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithAPIKey("secret"))
	resp, err := c.Search(context.Background(), &SearchRequest{
		Query:  "wireless headphones",
		Budget: 200,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.TotalResults != 1 || resp.Results[0].ProductID != "p1" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Stage != "narrow-fallback" {
		t.Errorf("stage = %q", resp.Stage)
	}
}

func TestSearch_APIErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"validation_failed","message":"budget must be positive"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Search(context.Background(), &SearchRequest{Query: "laptop", Budget: -1})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "validation_failed" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestHealth_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(HealthReport{
			Status: "ok",
			Checks: map[string]string{"database": "ok"},
		})
	}))
	defer srv.Close()

	report, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if report.Status != "ok" || report.Checks["database"] != "ok" {
		t.Errorf("report = %+v", report)
	}
}

func TestHealth_DegradedReturnsReportAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthReport{
			Status: "degraded",
			Checks: map[string]string{"database": "error"},
		})
	}))
	defer srv.Close()

	report, err := New(srv.URL).Health(context.Background())
	if err == nil {
		t.Fatal("expected error for degraded service")
	}
	if report == nil || report.Status != "degraded" {
		t.Fatalf("report = %+v", report)
	}
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Stats{
			TotalProducts: 1500,
			Model:         "text-embedding-3-small",
			Dimensions:    1536,
		})
	}))
	defer srv.Close()

	stats, err := New(srv.URL).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalProducts != 1500 || stats.Dimensions != 1536 {
		t.Errorf("stats = %+v", stats)
	}
}

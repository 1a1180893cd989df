package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"flupp/internal/api"
	"flupp/internal/logbook"
	"flupp/internal/testsupport"
)

func newTestServer(t *testing.T) (*httptest.Server, *logbook.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.API.CacheEntries = 2
	store := testsupport.MustOpenStore(t, cfg)
	srv, err := api.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func doRequest(t *testing.T, method, url string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

func TestHealth(t *testing.T) {
	ts, store := newTestServer(t)
	resp := doRequest(t, http.MethodGet, ts.URL+"/api/v1/health", nil)
	expectStatus(t, resp, http.StatusOK)
	health := decodeJSON[api.HealthResponse](t, resp)
	if health.Status != "ok" || health.Database != store.Path() {
		t.Fatalf("unexpected health %+v", health)
	}
	if id := resp.Header.Get("Content-Type"); id != "application/json" {
		t.Fatalf("unexpected content type %q", id)
	}
}

func TestImportEndpoints(t *testing.T) {
	ts, store := newTestServer(t)
	imp := testsupport.MustImportSample(t, store, "club.flu")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/v1/imports", nil)
	expectStatus(t, resp, http.StatusOK)
	list := decodeJSON[api.ImportList](t, resp)
	if len(list.Imports) != 1 || list.Imports[0].ID != imp.ID {
		t.Fatalf("unexpected import list %+v", list)
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/imports/"+imp.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	got := decodeJSON[logbook.Import](t, resp)
	if got.SourceName != "club.flu" || got.FlightCount != 3 {
		t.Fatalf("unexpected import %+v", got)
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/imports/"+imp.ID+"/logs", nil)
	expectStatus(t, resp, http.StatusOK)
	logs := decodeJSON[api.FlightLogList](t, resp)
	if len(logs.FlightLogs) != 2 || logs.FlightLogs[1].Title != "Motorflug" {
		t.Fatalf("unexpected flight logs %+v", logs)
	}

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("%s/api/v1/logs/%d/flights", ts.URL, logs.FlightLogs[0].ID), nil)
	expectStatus(t, resp, http.StatusOK)
	flights := decodeJSON[api.FlightList](t, resp)
	if len(flights.Flights) != 2 || flights.Flights[0].AircraftID != "D-KAAA" {
		t.Fatalf("unexpected flights %+v", flights)
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/imports/"+imp.ID+"/totals", nil)
	expectStatus(t, resp, http.StatusOK)
	var totals struct {
		Overall struct {
			Flights  int `json:"flights"`
			Landings int `json:"landings"`
		} `json:"overall"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&totals); err != nil {
		t.Fatalf("decode totals: %v", err)
	}
	if totals.Overall.Flights != 3 || totals.Overall.Landings != 5 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/imports/"+imp.ID+"/source", nil)
	expectStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != testsupport.SampleLogbook {
		t.Fatal("source endpoint should return the original export")
	}

	resp = doRequest(t, http.MethodDelete, ts.URL+"/api/v1/imports/"+imp.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)
	resp = doRequest(t, http.MethodDelete, ts.URL+"/api/v1/imports/"+imp.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/imports/"+imp.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestNotFoundAndBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)
	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/imports/missing", http.StatusNotFound},
		{http.MethodGet, "/api/v1/imports/missing/logs", http.StatusNotFound},
		{http.MethodGet, "/api/v1/imports/missing/totals", http.StatusNotFound},
		{http.MethodGet, "/api/v1/imports/missing/source", http.StatusNotFound},
		{http.MethodGet, "/api/v1/logs/abc/flights", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/logs/42/flights", http.StatusNotFound},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
		{http.MethodPut, "/api/v1/health", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := doRequest(t, tc.method, ts.URL+tc.path, nil)
			expectStatus(t, resp, tc.want)
			body := decodeJSON[api.ErrorResponse](t, resp)
			if body.Error == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestDecodeEndpointCaches(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/v1/decode", strings.NewReader(testsupport.SampleLogbook))
	expectStatus(t, resp, http.StatusOK)
	first := decodeJSON[api.DecodeResponse](t, resp)
	if first.Cached {
		t.Fatal("first decode must not be cached")
	}
	if first.Document == nil || first.Document.FlightCount() != 3 {
		t.Fatalf("unexpected document %+v", first.Document)
	}
	if first.Totals.Overall.Flights != 3 {
		t.Fatalf("unexpected totals %+v", first.Totals.Overall)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(testsupport.SampleLogbook)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	resp = doRequest(t, http.MethodPost, ts.URL+"/api/v1/decode", &buf)
	expectStatus(t, resp, http.StatusOK)
	second := decodeJSON[api.DecodeResponse](t, resp)
	if !second.Cached || second.Checksum != first.Checksum {
		t.Fatalf("expected cached decode of gzip body, got cached=%v checksum=%s", second.Cached, second.Checksum)
	}
}

func TestDecodeEndpointErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	cases := []struct {
		name string
		body string
		kind string
		raw  string
	}{
		{"version", "3\nheader\n:Log\n", "unsupported_version", "3"},
		{"structure", "4\nno logs here", "invalid_file", ""},
		{"license", "4\n\n:Log\nno license\n[TableCols]Dat;StT;LaT\n", "missing_lic_settings", ""},
		{"date", "4\n\n:Log\n[LicSettings]0\n[TableCols]Dat;StT;LaT\n32.01.20;10:00;11:00\n", "invalid_date", "32.01.20"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, ts.URL+"/api/v1/decode", strings.NewReader(tc.body))
			expectStatus(t, resp, http.StatusUnprocessableEntity)
			body := decodeJSON[api.ErrorResponse](t, resp)
			if body.Kind != tc.kind || body.Raw != tc.raw {
				t.Fatalf("unexpected error body %+v", body)
			}
		})
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	srv, err := api.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp := doRequest(t, http.MethodGet, "http://"+srv.Addr()+"/api/v1/imports", nil)
	expectStatus(t, resp, http.StatusServiceUnavailable)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexiusacademia/gosteel/internal/catalog"
	"github.com/alexiusacademia/gosteel/internal/section"
)

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	return New(Config{Address: "127.0.0.1:0"}, zap.New(core), cat), logs
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body %q", rec.Body.String())
	}
}

func TestProfile(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/profile?family=rectangle&H=200&B=100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Family     section.Family     `json:"family"`
		Profile    section.Profile    `json:"profile"`
		Properties section.Properties `json:"properties"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Family != section.Rectangle {
		t.Errorf("family %s", resp.Family)
	}
	if len(resp.Profile.Outer) != 4 {
		t.Errorf("outer ring has %d points, want 4", len(resp.Profile.Outer))
	}
	if a := resp.Properties.Area; a < 0.0199 || a > 0.0201 {
		t.Errorf("area %g, want 0.02", a)
	}

	rec = get(t, s, "/api/profile?family=square-tube&A=100&t=5")
	if !strings.Contains(rec.Body.String(), `"hollow":true`) {
		t.Errorf("tube not reported hollow: %s", rec.Body.String())
	}
}

func TestProfileByDesignation(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/profile?designation=H-300x150x6.5x9&axis=weak")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Family     section.Family     `json:"family"`
		Axis       section.Axis       `json:"axis"`
		Profile    section.Profile    `json:"profile"`
		Properties section.Properties `json:"properties"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Family != section.HNarrow || resp.Axis != section.AxisWeak {
		t.Errorf("got %s %s", resp.Family, resp.Axis)
	}
	// Turned on its weak axis the 300 deep section is 300 wide.
	minX, minY, maxX, maxY := resp.Profile.Bounds()
	if d := cmp.Diff([]float64{maxX - minX, maxY - minY}, []float64{resp.Properties.Width, resp.Properties.Height}, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("properties describe another orientation than the outline (-bounds +properties):\n%s", d)
	}
	if math.Abs(resp.Properties.Width-0.3) > 1e-12 || math.Abs(resp.Properties.Height-0.15) > 1e-12 {
		t.Errorf("weak axis size %gx%g, want 0.3x0.15", resp.Properties.Width, resp.Properties.Height)
	}
	if resp.Properties.Ix >= resp.Properties.Iy {
		t.Errorf("weak axis Ix %g not below Iy %g", resp.Properties.Ix, resp.Properties.Iy)
	}

	rec = get(t, s, "/api/profile?designation=NOPE")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown designation: status %d", rec.Code)
	}
}

func TestNoProfile(t *testing.T) {
	s, logs := newTestServer(t)
	for _, target := range []string{
		"/api/profile?family=pipe&D=100&t=60",
		"/api/diagram.svg?family=channel&H=200",
	} {
		rec := get(t, s, target)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status %d, want 422", target, rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
			t.Errorf("%s: expected a JSON error, got %v", target, err)
		}
	}
	if n := logs.FilterMessage("section has no profile, skipping").Len(); n != 2 {
		t.Errorf("got %d warnings, want 2", n)
	}
}

func TestBadRequest(t *testing.T) {
	s, _ := newTestServer(t)
	for _, target := range []string{
		"/api/profile?family=z-purlin&H=100",
		"/api/profile?family=circle&D=abc",
		"/api/profile?family=circle&D=100&axis=diagonal",
		"/api/catalog?family=nope",
	} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, rec.Code)
		}
	}
}

func TestDiagram(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/diagram.svg?family=pipe&D=165.2&t=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"<svg", "D=165.2", "t=5", "</svg>"} {
		if !strings.Contains(body, want) {
			t.Errorf("diagram lacks %q", want)
		}
	}
}

func TestCatalog(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/catalog?family=pipe")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var entries []struct {
		Designation string         `json:"designation"`
		Family      section.Family `json:"family"`
		UnitMass    float64        `json:"unit_mass"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("no pipes in catalog")
	}
	for _, e := range entries {
		if e.Family != section.Pipe || e.UnitMass <= 0 {
			t.Errorf("unexpected entry %+v", e)
		}
	}

	empty := New(Config{}, zap.NewNop(), nil)
	if rec := get(t, empty, "/api/catalog"); rec.Code != http.StatusNotFound {
		t.Errorf("no catalog: status %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	get(t, s, "/api/profile?family=circle&D=100")
	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gosteel_profiles_total") {
		t.Error("profile counter not exported")
	}
}

func TestRunShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/panforge/panlayout/pkg/catalog"
	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/store"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t, Options{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want echo", got)
	}
}

func TestParse(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := post(t, ts, "/v1/parse", `{"layout": "D/(F)-A-Bb-C-D-E-F-G-A-[C#]", "sample_path": "/samples/"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[parseResponse](t, resp)
	if body.Format != "extended" || !body.UseFlats || len(body.Notes) != 11 {
		t.Fatalf("body = %+v", body)
	}
	ding := body.Notes[0]
	if ding.Role != "ding" || ding.Name != "D3" || ding.MIDI != 50 {
		t.Errorf("ding = %+v", ding)
	}
	bb := body.Notes[3]
	if bb.Display != "Bb3" || bb.Sample != "/samples/As3" || bb.Pitch != "A#" {
		t.Errorf("Bb note = %+v", bb)
	}
}

func TestParseFrenchPreset(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := post(t, ts, "/v1/parse", `{"preset": "kurd-9", "notation": "french"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[parseResponse](t, resp)
	if body.Notes[0].Display != "Ré3" || body.Notes[2].Display != "Sib3" {
		t.Errorf("french display = %s %s", body.Notes[0].Display, body.Notes[2].Display)
	}
}

func TestParseErrors(t *testing.T) {
	ts := newTestServer(t, Options{})
	tests := []struct {
		name     string
		body     string
		status   int
		code     errors.Code
		stage    string
		token    string
		position int
	}{
		{"bad pitch", `{"layout": "D/-A-H-C"}`, 422, errors.ErrCodeInvalidPitchClass, "note", "H", 1},
		{"bad root", `{"layout": "Z/-A-C"}`, 422, errors.ErrCodeParseFailure, "root", "Z", 0},
		{"empty", `{"layout": ""}`, 400, errors.ErrCodeInvalidInput, "", "", -1},
		{"bad mode", `{"layout": "D/-A", "mode": "bebop"}`, 400, errors.ErrCodeInvalidMode, "", "", -1},
		{"unknown field", `{"layuot": "D/-A"}`, 400, errors.ErrCodeInvalidInput, "", "", -1},
		{"unknown preset", `{"preset": "nope"}`, 404, errors.ErrCodePresetNotFound, "", "", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "/v1/parse", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeBody[errorResponse](t, resp)
			if body.Code != tt.code || body.Stage != tt.stage || body.Token != tt.token {
				t.Errorf("body = %+v", body)
			}
			if tt.position >= 0 && (body.Position == nil || *body.Position != tt.position) {
				t.Errorf("position = %v, want %d", body.Position, tt.position)
			}
			if body.RequestID == "" {
				t.Error("error body missing request id")
			}
		})
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := post(t, ts, "/v1/layout", `{"layout": "D/-A-Bb-C-D-E-F-G-A", "radius": 100}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Use-Flats") != "true" {
		t.Error("X-Use-Flats should be true for D aeolian")
	}
	var body struct {
		ShellRadius float64 `json:"shell_radius"`
		Notes       []struct {
			Role string  `json:"role"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
		} `json:"notes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ShellRadius != 100 || len(body.Notes) != 9 {
		t.Fatalf("body = %+v", body)
	}
	if body.Notes[0].Role != "ding" || body.Notes[0].Y >= 0 {
		t.Errorf("ding should sit below centre: %+v", body.Notes[0])
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts, "/v1/render", `{"preset": "low-pygmy"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(data, []byte("F# Low Pygmy")) {
		t.Error("preset name should become the title")
	}

	resp = post(t, ts, "/v1/render", `{"layout": "D/-A", "format": "png", "scale": 1}`)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("png: status %d, type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp = post(t, ts, "/v1/render", `{"layout": "D/-A", "format": "gif"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("gif: status %d, want 400", resp.StatusCode)
	}
}

func TestSpell(t *testing.T) {
	ts := newTestServer(t, Options{})
	tests := []struct {
		query    string
		status   int
		useFlats bool
	}{
		{"root=D&mode=aeolian", 200, true},
		{"root=E&mode=aeolian", 200, false},
		{"root=F&mode=ionian", 200, true},
		{"root=G%23&mode=aeolian", 200, false},
		{"root=H&mode=aeolian", 400, false},
		{"root=D&mode=bebop", 400, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := get(t, ts, "/v1/spell?"+tt.query)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != 200 {
				return
			}
			body := decodeBody[spellResponse](t, resp)
			if body.UseFlats != tt.useFlats {
				t.Errorf("use_flats = %v, want %v", body.UseFlats, tt.useFlats)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	ts := newTestServer(t, Options{})

	list := decodeBody[[]catalog.Preset](t, get(t, ts, "/v1/presets"))
	if len(list) < 10 {
		t.Errorf("got %d presets", len(list))
	}

	p := decodeBody[catalog.Preset](t, get(t, ts, "/v1/presets/hijaz"))
	if p.Name != "D Hijaz" {
		t.Errorf("preset = %+v", p)
	}

	if resp := get(t, ts, "/v1/presets/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing preset status = %d", resp.StatusCode)
	}
}

func TestInstruments(t *testing.T) {
	st := store.NewMemoryStore()
	ts := newTestServer(t, Options{Store: st})

	resp := post(t, ts, "/v1/instruments", `{"name": "My Kurd", "layout": "D/-A-Bb-C", "mode": "aeolian"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	inst := decodeBody[store.Instrument](t, resp)
	if inst.ID == "" || inst.Notes != 4 {
		t.Fatalf("saved = %+v", inst)
	}

	got := decodeBody[store.Instrument](t, get(t, ts, "/v1/instruments/"+inst.ID))
	if got.Name != "My Kurd" {
		t.Errorf("get = %+v", got)
	}

	list := decodeBody[[]store.Instrument](t, get(t, ts, "/v1/instruments"))
	if len(list) != 1 {
		t.Errorf("list has %d entries", len(list))
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/instruments/"+inst.ID, nil)
	dresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	dresp.Body.Close()
	if dresp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", dresp.StatusCode)
	}
	if resp := get(t, ts, "/v1/instruments/"+inst.ID); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}

	bad := post(t, ts, "/v1/instruments", `{"name": "x", "layout": "D/-H", "mode": "aeolian"}`)
	if bad.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid layout status = %d, want 422", bad.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RateLimit: 0.001, Burst: 2})

	for i := 0; i < 2; i++ {
		if resp := get(t, ts, "/v1/presets"); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d", i, resp.StatusCode)
		}
	}
	resp := get(t, ts, "/v1/presets")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if body := decodeBody[errorResponse](t, resp); body.Code != errors.ErrCodeRateLimited {
		t.Errorf("code = %s", body.Code)
	}

	// Health checks are never limited.
	if resp := get(t, ts, "/healthz"); resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
}

func TestNotFoundRoute(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := get(t, ts, "/v2/nothing")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

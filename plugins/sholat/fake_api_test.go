package sholat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/BDNK1/sflowg-sholat/runtime/plugin"
)

const (
	apiPrefix      = "/v2"
	cityPrefix     = apiPrefix + "/sholat/kota/cari/"
	schedulePrefix = apiPrefix + "/sholat/jadwal/"
)

// fakeAPI mimics the myquran v2 endpoints the node calls.
type fakeAPI struct {
	mu sync.Mutex

	cities    map[string][]any // city name -> candidates
	schedules map[string]any   // "cityId/date" -> schedule

	// status overrides per city name or "cityId/date"; 0 means 200
	status map[string]int
	// raw body overrides per city name
	rawBody map[string]string

	cityCalls     []string // escaped request paths
	scheduleCalls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cities:    make(map[string][]any),
		schedules: make(map[string]any),
		status:    make(map[string]int),
		rawBody:   make(map[string]string),
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.EscapedPath()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasPrefix(path, cityPrefix):
		f.cityCalls = append(f.cityCalls, path)
		name, _ := url.PathUnescape(strings.TrimPrefix(path, cityPrefix))

		if code := f.status[name]; code != 0 {
			w.WriteHeader(code)
			_, _ = io.WriteString(w, `{"status":false,"message":"upstream error"}`)
			return
		}
		if raw, ok := f.rawBody[name]; ok {
			_, _ = io.WriteString(w, raw)
			return
		}
		candidates, ok := f.cities[name]
		if !ok {
			_, _ = io.WriteString(w, `{"status":false,"message":"Data tidak ditemukan"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": true, "data": candidates})

	case strings.HasPrefix(path, schedulePrefix):
		f.scheduleCalls = append(f.scheduleCalls, path)
		key := strings.TrimPrefix(path, schedulePrefix)

		if code := f.status[key]; code != 0 {
			w.WriteHeader(code)
			_, _ = io.WriteString(w, `{"status":false}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": true, "data": f.schedules[key]})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) calls() (cities, schedules []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cityCalls...), append([]string(nil), f.scheduleCalls...)
}

// newTestNode starts the fake API and returns an initialized node pointed at it.
func newTestNode(t *testing.T, api *fakeAPI) *SholatNode {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	node := &SholatNode{Config: Config{BaseURL: srv.URL + apiPrefix}}
	if err := node.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { _ = node.Shutdown(context.Background()) })
	return node
}

// fakeHost is a test double of the host context.
type fakeHost struct {
	context.Context
	items          []plugin.Item
	params         []map[string]any // per record
	continueOnFail bool
}

func newFakeHost(items []plugin.Item, params []map[string]any) *fakeHost {
	return &fakeHost{
		Context: context.Background(),
		items:   items,
		params:  params,
	}
}

func (h *fakeHost) InputData() []plugin.Item {
	out := make([]plugin.Item, len(h.items))
	for i, it := range h.items {
		out[i] = it.Clone()
	}
	return out
}

func (h *fakeHost) NodeParameter(name string, itemIndex int, fallback any) (any, error) {
	if itemIndex < len(h.params) {
		if v, ok := h.params[itemIndex][name]; ok {
			return v, nil
		}
	}
	return fallback, nil
}

func (h *fakeHost) ContinueOnFail() bool {
	return h.continueOnFail
}

func (h *fakeHost) Node() plugin.NodeIdentity {
	return plugin.NodeIdentity{ID: "n1", Name: "Sholat Reminder", Type: NodeType, TypeVersion: 1}
}

func (h *fakeHost) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func city(id, name string) map[string]any {
	return map[string]any{"id": id, "lokasi": name}
}

func cityParams(names ...string) []map[string]any {
	params := make([]map[string]any, len(names))
	for i, n := range names {
		params[i] = map[string]any{ParamLocationCity: n, ParamDateTime: "2025-07-31"}
	}
	return params
}

func emptyItems(n int) []plugin.Item {
	items := make([]plugin.Item, n)
	for i := range items {
		items[i] = plugin.NewItem(map[string]any{"seq": float64(i)})
	}
	return items
}

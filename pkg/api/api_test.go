package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gntech/signage/pkg/content"
)

type fakeProvider struct {
	vm      content.ViewModel
	initial bool
}

func (f *fakeProvider) Snapshot() content.ViewModel { return f.vm.Clone() }
func (f *fakeProvider) InitialLoad() bool           { return f.initial }

func TestViewModelEndpoint(t *testing.T) {
	vm := content.NewViewModel("2026-09-01")
	vm.SchoolName = "Northside High"
	p := &fakeProvider{vm: *vm}
	router := NewRouter(p, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/viewmodel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		ViewModel   content.ViewModel `json:"viewmodel"`
		InitialLoad bool              `json:"initial_load"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ViewModel.SchoolName != "Northside High" {
		t.Fatalf("school = %q, want Northside High", body.ViewModel.SchoolName)
	}
	if body.InitialLoad {
		t.Fatal("initial_load should be false")
	}
}

func TestRefreshEndpoint(t *testing.T) {
	called := 0
	p := &fakeProvider{vm: *content.NewViewModel("2026-09-01")}
	router := NewRouter(p, func() { called++ })

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if called != 1 {
		t.Fatalf("refresh called %d times, want 1", called)
	}
}

func TestRefreshWithoutHookUnavailable(t *testing.T) {
	p := &fakeProvider{vm: *content.NewViewModel("2026-09-01")}
	router := NewRouter(p, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	p := &fakeProvider{vm: *content.NewViewModel("2026-09-01")}
	router := NewRouter(p, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

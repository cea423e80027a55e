package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gntech/signage/pkg/content"
)

// State is a goroutine-safe Provider. The display loop publishes a fresh
// snapshot after every reconcile; HTTP handlers read it without touching the
// loop's own state.
type State struct {
	mu      sync.RWMutex
	vm      content.ViewModel
	initial bool
}

// NewState creates a State seeded with the placeholder view model.
func NewState(vm content.ViewModel) *State {
	return &State{vm: vm, initial: true}
}

// Publish replaces the published snapshot.
func (s *State) Publish(vm content.ViewModel, initial bool) {
	s.mu.Lock()
	s.vm = vm
	s.initial = initial
	s.mu.Unlock()
}

// Snapshot returns a copy of the last published view model.
func (s *State) Snapshot() content.ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vm.Clone()
}

// InitialLoad reports whether the display was still settling at last publish.
func (s *State) InitialLoad() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initial
}

// Serve runs the API server until ctx is canceled, then shuts it down with a
// short grace period. Listen errors other than a clean shutdown are returned.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			slog.Error("api shutdown failed", slog.String("error", err.Error()))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

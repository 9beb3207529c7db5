package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/usecases"
)

func TestStatusService_CachesNonVerbose(t *testing.T) {
	calls := 0
	engine := &mockEngine{
		statusFn: func(ctx context.Context, verbose bool) (*domain.EngineStatus, error) {
			calls++
			return &domain.EngineStatus{Version: "3.4.0", ObservedAt: time.Now()}, nil
		},
	}
	recorder := &mockStatusRecorder{}
	svc := usecases.NewStatusService(engine, recorder, newMockCache(), 60)

	for i := 0; i < 3; i++ {
		status, err := svc.Current(context.Background(), false)
		if err != nil {
			t.Fatalf("status %d: %v", i, err)
		}
		if status.Version != "3.4.0" {
			t.Errorf("version = %q", status.Version)
		}
	}
	if calls != 1 {
		t.Errorf("engine called %d times, want 1", calls)
	}
	if len(recorder.recorded) != 1 {
		t.Errorf("recorded %d observations, want 1", len(recorder.recorded))
	}
}

func TestStatusService_VerboseBypassesCache(t *testing.T) {
	calls := 0
	engine := &mockEngine{
		statusFn: func(ctx context.Context, verbose bool) (*domain.EngineStatus, error) {
			calls++
			if !verbose {
				t.Errorf("verbose flag not forwarded")
			}
			return &domain.EngineStatus{HasTiles: true}, nil
		},
	}
	svc := usecases.NewStatusService(engine, &mockStatusRecorder{}, newMockCache(), 60)

	for i := 0; i < 2; i++ {
		if _, err := svc.Current(context.Background(), true); err != nil {
			t.Fatalf("status %d: %v", i, err)
		}
	}
	if calls != 2 {
		t.Errorf("engine called %d times, want 2", calls)
	}
}

func TestStatusService_LastRecorded(t *testing.T) {
	want := &domain.EngineStatus{Version: "3.3.0"}
	recorder := &mockStatusRecorder{
		latestFn: func(ctx context.Context) (*domain.EngineStatus, error) { return want, nil },
	}
	svc := usecases.NewStatusService(&mockEngine{}, recorder, newMockCache(), 0)

	got, err := svc.LastRecorded(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Version != "3.3.0" {
		t.Errorf("version = %q", got.Version)
	}
}

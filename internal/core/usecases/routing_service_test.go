package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/imanolea/wayfinder/internal/core/costing"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/usecases"
)

// --- Mock RoutingEngine ---

type mockEngine struct {
	routeFn     func(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error)
	matrixFn    func(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResult, error)
	elevationFn func(ctx context.Context, req domain.ElevationRequest) (*domain.ElevationProfile, error)
	statusFn    func(ctx context.Context, verbose bool) (*domain.EngineStatus, error)
}

func (m *mockEngine) Route(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
	if m.routeFn != nil {
		return m.routeFn(ctx, req)
	}
	return &domain.PlannedRoute{}, nil
}

func (m *mockEngine) Matrix(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResult, error) {
	if m.matrixFn != nil {
		return m.matrixFn(ctx, req)
	}
	return &domain.MatrixResult{}, nil
}

func (m *mockEngine) Elevation(ctx context.Context, req domain.ElevationRequest) (*domain.ElevationProfile, error) {
	if m.elevationFn != nil {
		return m.elevationFn(ctx, req)
	}
	return &domain.ElevationProfile{}, nil
}

func (m *mockEngine) Status(ctx context.Context, verbose bool) (*domain.EngineStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx, verbose)
	}
	return &domain.EngineStatus{}, nil
}

// --- Mock TripRepository ---

type mockTripRepo struct {
	insertFn        func(ctx context.Context, trip *domain.SavedTrip) error
	getByIDFn       func(ctx context.Context, id string) (*domain.SavedTrip, error)
	listFn          func(ctx context.Context, offset, limit int) ([]domain.SavedTrip, int, error)
	mostRequestedFn func(ctx context.Context, limit int) ([]domain.SavedTrip, error)
}

func (m *mockTripRepo) Insert(ctx context.Context, trip *domain.SavedTrip) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, trip)
	}
	return nil
}

func (m *mockTripRepo) GetByID(ctx context.Context, id string) (*domain.SavedTrip, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTripRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedTrip, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockTripRepo) MostRequested(ctx context.Context, limit int) ([]domain.SavedTrip, error) {
	if m.mostRequestedFn != nil {
		return m.mostRequestedFn(ctx, limit)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	routeEvents []*domain.RouteEvent
	alerts      []*domain.EngineAlert
}

func (m *mockPublisher) PublishRoutePlanned(ctx context.Context, ev *domain.RouteEvent) error {
	m.routeEvents = append(m.routeEvents, ev)
	return nil
}

func (m *mockPublisher) PublishEngineAlert(ctx context.Context, alert *domain.EngineAlert) error {
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }

// --- Mock StatusRecorder ---

type mockStatusRecorder struct {
	recorded []*domain.EngineStatus
	latestFn func(ctx context.Context) (*domain.EngineStatus, error)
}

func (m *mockStatusRecorder) Record(ctx context.Context, status *domain.EngineStatus) error {
	m.recorded = append(m.recorded, status)
	return nil
}

func (m *mockStatusRecorder) Latest(ctx context.Context) (*domain.EngineStatus, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return nil, nil
}

var testLocations = []domain.GeoPoint{
	{Lat: 43.262985, Lon: -2.935013},
	{Lat: 43.270148, Lon: -2.938068},
}

func TestRoutingService_PlanEnrichesResult(t *testing.T) {
	engine := &mockEngine{
		routeFn: func(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
			return &domain.PlannedRoute{
				Costing: req.Costing,
				Units:   req.Units,
				Summary: domain.RouteSummary{TimeSeconds: 720, LengthKm: 1.6},
				Legs:    []domain.RouteLeg{{EncodedShape: "abc"}},
			}, nil
		},
	}
	trips := &mockTripRepo{
		insertFn: func(ctx context.Context, trip *domain.SavedTrip) error {
			trip.ID = "trip-42"
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewRoutingService(engine, trips, newMockCache(), pub, 300)

	route, err := svc.Plan(context.Background(), domain.PlanRequest{
		Locations: testLocations,
		Costing:   costing.Pedestrian,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.ID != "trip-42" {
		t.Errorf("route ID = %q, want trip-42", route.ID)
	}
	if route.CrowFliesKm <= 0 || route.CrowFliesKm > 2 {
		t.Errorf("crow-flies = %f, want a sub-2km hop", route.CrowFliesKm)
	}
	if route.DetourFactor < 1 {
		t.Errorf("detour factor = %f, want >= 1", route.DetourFactor)
	}
	if len(pub.routeEvents) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.routeEvents))
	}
	if pub.routeEvents[0].TripID != "trip-42" || pub.routeEvents[0].Costing != costing.Pedestrian {
		t.Errorf("event = %+v", pub.routeEvents[0])
	}
}

func TestRoutingService_PlanServesFromCache(t *testing.T) {
	calls := 0
	engine := &mockEngine{
		routeFn: func(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
			calls++
			return &domain.PlannedRoute{Summary: domain.RouteSummary{LengthKm: 1.6}}, nil
		},
	}
	svc := usecases.NewRoutingService(engine, &mockTripRepo{}, newMockCache(), &mockPublisher{}, 300)

	req := domain.PlanRequest{Locations: testLocations, Costing: costing.Auto}
	first, err := svc.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("first plan: %v", err)
	}
	if first.CacheHit {
		t.Errorf("first plan should not be a cache hit")
	}

	second, err := svc.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("second plan: %v", err)
	}
	if !second.CacheHit {
		t.Errorf("second plan should be a cache hit")
	}
	if calls != 1 {
		t.Errorf("engine called %d times, want 1", calls)
	}
}

func TestRoutingService_PlanValidates(t *testing.T) {
	svc := usecases.NewRoutingService(&mockEngine{}, &mockTripRepo{}, newMockCache(), &mockPublisher{}, 0)

	if _, err := svc.Plan(context.Background(), domain.PlanRequest{
		Locations: testLocations[:1],
	}); err == nil {
		t.Errorf("single location should fail")
	}

	if _, err := svc.Plan(context.Background(), domain.PlanRequest{
		Locations: testLocations,
		Costing:   "hovercraft",
	}); err == nil {
		t.Errorf("unknown costing should fail")
	}
}

func TestRoutingService_PlanDefaultsCosting(t *testing.T) {
	var seen domain.PlanRequest
	engine := &mockEngine{
		routeFn: func(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
			seen = req
			return &domain.PlannedRoute{}, nil
		},
	}
	svc := usecases.NewRoutingService(engine, &mockTripRepo{}, newMockCache(), &mockPublisher{}, 0)

	if _, err := svc.Plan(context.Background(), domain.PlanRequest{Locations: testLocations}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.Costing != costing.Auto {
		t.Errorf("costing = %q, want auto", seen.Costing)
	}
	if seen.Units != "kilometers" {
		t.Errorf("units = %q, want kilometers", seen.Units)
	}
}

func TestRoutingService_EngineErrorPassesThrough(t *testing.T) {
	wantErr := errors.New("engine down")
	engine := &mockEngine{
		routeFn: func(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
			return nil, wantErr
		},
	}
	svc := usecases.NewRoutingService(engine, &mockTripRepo{}, newMockCache(), &mockPublisher{}, 0)

	_, err := svc.Plan(context.Background(), domain.PlanRequest{Locations: testLocations})
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}
}

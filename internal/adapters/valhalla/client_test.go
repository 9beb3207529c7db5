package valhalla_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imanolea/wayfinder/internal/adapters/valhalla"
	"github.com/imanolea/wayfinder/internal/core/costing"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/pkg/polyline"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *valhalla.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return valhalla.New(srv.URL, 5*time.Second)
}

func TestRouteDecodesLegShapes(t *testing.T) {
	shape := []polyline.Point{
		{Lat: 43.262985, Lon: -2.935013},
		{Lat: 43.263713, Lon: -2.935226},
		{Lat: 43.264511, Lon: -2.934873},
	}
	encoded, err := polyline.Encode(shape, polyline.Precision6)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" {
			t.Errorf("path = %q, want /route", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprintf(w, `{"trip":{
			"status":0,"status_message":"Found route between points",
			"units":"kilometers","language":"en-US",
			"summary":{"time":98.1,"length":0.34,"has_toll":false,"has_highway":false,"has_ferry":false,
				"min_lat":43.262985,"min_lon":-2.935226,"max_lat":43.264511,"max_lon":-2.934873},
			"legs":[{
				"summary":{"time":98.1,"length":0.34,"has_toll":false,"has_highway":false,"has_ferry":false,
					"min_lat":43.262985,"min_lon":-2.935226,"max_lat":43.264511,"max_lon":-2.934873},
				"maneuvers":[{"type":1,"instruction":"Walk north.","time":98.1,"length":0.34,
					"begin_shape_index":0,"end_shape_index":2,"travel_mode":"pedestrian"}],
				"shape":%q
			}]
		}}`, encoded)
	})

	route, err := client.Route(context.Background(), domain.PlanRequest{
		Locations: []domain.GeoPoint{
			{Lat: 43.262985, Lon: -2.935013},
			{Lat: 43.264511, Lon: -2.934873},
		},
		Costing: costing.Pedestrian,
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}

	if gotBody["costing"] != "pedestrian" {
		t.Errorf("request costing = %v, want pedestrian", gotBody["costing"])
	}
	if len(route.Legs) != 1 {
		t.Fatalf("got %d legs, want 1", len(route.Legs))
	}
	leg := route.Legs[0]
	if leg.EncodedShape != encoded {
		t.Errorf("encoded shape not preserved")
	}
	if len(leg.Geometry.Coordinates) != len(shape) {
		t.Fatalf("decoded %d points, want %d", len(leg.Geometry.Coordinates), len(shape))
	}
	for i, want := range shape {
		got := leg.Geometry.Coordinates[i]
		if math.Abs(got.Lat-want.Lat) > 1e-6 || math.Abs(got.Lon-want.Lon) > 1e-6 {
			t.Errorf("point %d: got (%f, %f), want (%f, %f)", i, got.Lat, got.Lon, want.Lat, want.Lon)
		}
	}
	if route.Summary.Bounds.MaxLat != 43.264511 {
		t.Errorf("bounds max lat = %f", route.Summary.Bounds.MaxLat)
	}
	if len(leg.Maneuvers) != 1 || leg.Maneuvers[0].Instruction != "Walk north." {
		t.Errorf("maneuvers not translated: %+v", leg.Maneuvers)
	}
}

func TestRouteMalformedShapeFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"trip":{"status":0,"status_message":"ok","units":"kilometers","language":"en-US",
			"summary":{"time":1,"length":1,"has_toll":false,"has_highway":false,"has_ferry":false,
				"min_lat":0,"min_lon":0,"max_lat":0,"max_lon":0},
			"legs":[{"summary":{"time":1,"length":1,"has_toll":false,"has_highway":false,"has_ferry":false,
				"min_lat":0,"min_lon":0,"max_lat":0,"max_lon":0},"maneuvers":[],"shape":"_p~iF"}]}}`)
	})

	_, err := client.Route(context.Background(), domain.PlanRequest{Costing: costing.Auto})
	if !errors.Is(err, polyline.ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestRemoteErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error_code":171,"error":"No suitable edges near location","status_code":400,"status":"Bad Request"}`)
	})

	_, err := client.Route(context.Background(), domain.PlanRequest{Costing: costing.Auto})
	var remote *valhalla.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("got %v, want *RemoteError", err)
	}
	if remote.ErrorCode != 171 || remote.StatusCode != 400 {
		t.Errorf("remote error = %+v", remote)
	}
}

func TestMatrixTranslatesCells(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sources_to_targets" {
			t.Errorf("path = %q, want /sources_to_targets", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["verbose"] != true {
			t.Errorf("verbose = %v, want true", body["verbose"])
		}
		fmt.Fprint(w, `{"algorithm":"timedistancematrix","units":"kilometers",
			"sources_to_targets":[
				[{"distance":0.0,"time":0,"from_index":0,"to_index":0},
				 {"distance":5.24,"time":421,"from_index":0,"to_index":1}]
			]}`)
	})

	result, err := client.Matrix(context.Background(), domain.MatrixRequest{
		Sources: []domain.GeoPoint{{Lat: 43.26, Lon: -2.93}},
		Targets: []domain.GeoPoint{{Lat: 43.26, Lon: -2.93}, {Lat: 43.30, Lon: -2.99}},
		Costing: costing.Auto,
	})
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if result.Algorithm != "timedistancematrix" {
		t.Errorf("algorithm = %q", result.Algorithm)
	}
	if len(result.Cells) != 1 || len(result.Cells[0]) != 2 {
		t.Fatalf("unexpected cell shape: %+v", result.Cells)
	}
	cell := result.Cells[0][1]
	if cell.TimeSeconds != 421 || cell.DistanceKm != 5.24 || cell.ToIndex != 1 {
		t.Errorf("cell = %+v", cell)
	}
}

func TestElevationRangeWithHoles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/height" {
			t.Errorf("path = %q, want /height", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["shape_format"] != "polyline5" {
			t.Errorf("shape_format = %v, want polyline5", body["shape_format"])
		}
		fmt.Fprint(w, `{"range_height":[[0,487],[112.5,null],[225,512.25]]}`)
	})

	profile, err := client.Elevation(context.Background(), domain.ElevationRequest{
		EncodedShape: "_p~iF~ps|U_ulLnnqC",
		ShapeDigits:  5,
		Range:        true,
	})
	if err != nil {
		t.Fatalf("elevation: %v", err)
	}
	if len(profile.RangeHeights) != 3 {
		t.Fatalf("got %d samples, want 3", len(profile.RangeHeights))
	}
	if profile.RangeHeights[1].Height != nil {
		t.Errorf("sample 1 should be a hole, got %v", *profile.RangeHeights[1].Height)
	}
	if profile.RangeHeights[2].RangeMeters != 225 || *profile.RangeHeights[2].Height != 512.25 {
		t.Errorf("sample 2 = %+v", profile.RangeHeights[2])
	}
}

func TestStatusParsesTilesetTimestamp(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("path = %q, want /status", r.URL.Path)
		}
		fmt.Fprint(w, `{"version":"3.4.0","tileset_last_modified":1735689600,
			"available_actions":["route","sources_to_targets","height","status"],
			"has_tiles":true,"has_admins":true,"has_timezones":false,"has_live_traffic":false}`)
	})

	status, err := client.Status(context.Background(), true)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Version != "3.4.0" {
		t.Errorf("version = %q", status.Version)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !status.TilesetLastModified.Equal(want) {
		t.Errorf("tileset modified = %v, want %v", status.TilesetLastModified, want)
	}
	if !status.HasTiles || !status.HasAdmins || status.HasTimezones {
		t.Errorf("verbose flags = %+v", status)
	}
	if status.ObservedAt.IsZero() {
		t.Errorf("observed_at should be set")
	}
}

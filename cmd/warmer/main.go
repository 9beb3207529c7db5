package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	natsadapter "github.com/imanolea/wayfinder/internal/adapters/nats"
	"github.com/imanolea/wayfinder/internal/adapters/postgres"
	"github.com/imanolea/wayfinder/internal/adapters/valhalla"
	"github.com/imanolea/wayfinder/internal/adapters/valkey"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/usecases"
	"github.com/imanolea/wayfinder/internal/pkg/config"
)

// The warmer re-plans the most requested trips on a fixed interval so that
// popular routes are always answered from cache, even right after a deploy
// or a cache flush.
func main() {
	cfg, err := config.Load("wayfinder-warmer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Cache — without it warming is pointless
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer cache.Close()

	// NATS
	events, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer events.Close()

	engine := valhalla.New(cfg.Engine.URL, time.Duration(cfg.Engine.Timeout)*time.Second)
	tripRepo := postgres.NewTripRepo(db)
	routing := usecases.NewRoutingService(engine, tripRepo, cache, events, cfg.Engine.RouteCacheTTL)

	interval := time.Duration(cfg.Warmer.Interval) * time.Second
	log.Printf("Wayfinder cache warmer — top %d trips every %s, concurrency %d",
		cfg.Warmer.TopTrips, interval, cfg.Warmer.Concurrency)

	// A new tileset invalidates every cached plan, so warm immediately on
	// engine alerts instead of waiting out the ticker.
	alertC := make(chan struct{}, 1)
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Printf("alert subscriber unavailable: %v", err)
	} else {
		defer sub.Close()
		err = sub.SubscribeEngineAlerts(ctx, "warmer", func(ctx context.Context, alert *domain.EngineAlert) error {
			log.Printf("engine alert: version %s, tileset %s", alert.Version, alert.TilesetLastModified)
			select {
			case alertC <- struct{}{}:
			default:
			}
			return nil
		})
		if err != nil {
			log.Printf("subscribe engine alerts: %v", err)
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Run once immediately
	warmPass(ctx, routing, tripRepo, cfg.Warmer.TopTrips, cfg.Warmer.Concurrency)

	for {
		select {
		case <-ticker.C:
			warmPass(ctx, routing, tripRepo, cfg.Warmer.TopTrips, cfg.Warmer.Concurrency)
		case <-alertC:
			warmPass(ctx, routing, tripRepo, cfg.Warmer.TopTrips, cfg.Warmer.Concurrency)
		case <-ctx.Done():
			return
		case sig := <-quit:
			log.Printf("received signal %v, shutting down warmer", sig)
			cancel()
			// Give in-flight plans time to finish
			time.Sleep(2 * time.Second)
			return
		}
	}
}

// warmPass re-plans the hottest trips. Each plan goes through the full
// routing service, so the cache entry it leaves behind is exactly what a
// live request would have produced.
func warmPass(ctx context.Context, routing *usecases.RoutingService, trips *postgres.TripRepo, top, concurrency int) {
	hot, err := trips.MostRequested(ctx, top)
	if err != nil {
		log.Printf("most requested: %v", err)
		return
	}
	if len(hot) == 0 {
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	warmed := 0
	var mu sync.Mutex

	for _, trip := range hot {
		wg.Add(1)
		go func(t domain.SavedTrip) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			planCtx, planCancel := context.WithTimeout(ctx, 60*time.Second)
			defer planCancel()

			_, err := routing.Plan(planCtx, domain.PlanRequest{
				Locations: []domain.GeoPoint{t.Origin, t.Destination},
				Costing:   t.Costing,
			})
			if err != nil {
				log.Printf("[%s] warm %s → %v", t.Costing, t.ID, err)
				return
			}

			mu.Lock()
			warmed++
			mu.Unlock()
		}(trip)
	}

	wg.Wait()
	log.Printf("warmed %d/%d trips", warmed, len(hot))
}

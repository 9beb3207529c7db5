package main

import (
	"context"
	"log"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/imanolea/wayfinder/internal/adapters/nats"
	"github.com/imanolea/wayfinder/internal/adapters/postgres"
	"github.com/imanolea/wayfinder/internal/adapters/valhalla"
	"github.com/imanolea/wayfinder/internal/pkg/config"
	"github.com/imanolea/wayfinder/internal/workflows"
)

// statusd runs the Temporal worker that watches the routing engine for
// tileset and version changes, and starts the watch workflow if it is not
// already running.
func main() {
	cfg, err := config.Load("wayfinder-statusd")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	// Database for status history
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// NATS for alerts
	events, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer events.Close()

	engine := valhalla.New(cfg.Engine.URL, time.Duration(cfg.Engine.Timeout)*time.Second)

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.StatusWatchWorkflow)
	w.RegisterActivity(&workflows.StatusActivities{
		Engine:   engine,
		Recorder: postgres.NewStatusRepo(db),
		Events:   events,
	})

	// Kick off the watch. The fixed workflow ID makes this a no-op when a
	// run is already active.
	_, err = c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "engine-status-watch",
		TaskQueue: cfg.Temporal.TaskQueue,
	}, workflows.StatusWatchWorkflow, workflows.StatusWatchInput{
		Interval: 5 * time.Minute,
	})
	if err != nil {
		log.Printf("start watch workflow: %v", err)
	}

	log.Println("status watch worker started")
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

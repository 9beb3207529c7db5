package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

// StatusWatchInput is the input for the engine status watch workflow.
type StatusWatchInput struct {
	// Interval between status probes.
	Interval time.Duration
	// LastModified carries the tileset timestamp across continue-as-new runs.
	LastModified time.Time
	// LastVersion carries the engine version across continue-as-new runs.
	LastVersion string
}

// checksPerRun bounds history growth before the workflow continues-as-new.
const checksPerRun = 500

// StatusWatchWorkflow polls the engine's status on a fixed interval and
// publishes an alert whenever the tileset or engine version changes. The
// probe history is kept out of the workflow state: each observation arrives
// as an activity result and only the last one is carried forward.
func StatusWatchWorkflow(ctx workflow.Context, input StatusWatchInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting status watch", "interval", input.Interval)

	if input.Interval <= 0 {
		input.Interval = 5 * time.Minute
	}

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	lastModified := input.LastModified
	lastVersion := input.LastVersion

	for i := 0; i < checksPerRun; i++ {
		if err := workflow.Sleep(ctx, input.Interval); err != nil {
			return err
		}

		var status domain.EngineStatus
		err := workflow.ExecuteActivity(ctx, "CheckEngineStatus").Get(ctx, &status)
		if err != nil {
			// The engine being down is not fatal for the watcher; keep polling.
			logger.Warn("status probe failed", "error", err)
			continue
		}

		changed := !lastModified.IsZero() &&
			(!status.TilesetLastModified.Equal(lastModified) || status.Version != lastVersion)
		if changed {
			logger.Info("engine change detected",
				"version", status.Version,
				"tileset_last_modified", status.TilesetLastModified)

			alert := domain.EngineAlert{
				Version:             status.Version,
				TilesetLastModified: status.TilesetLastModified,
				PreviousModified:    lastModified,
				ObservedAt:          status.ObservedAt,
			}
			if err := workflow.ExecuteActivity(ctx, "PublishTilesetAlert", alert).Get(ctx, nil); err != nil {
				logger.Warn("alert publish failed", "error", err)
			}
		}

		lastModified = status.TilesetLastModified
		lastVersion = status.Version
	}

	return workflow.NewContinueAsNewError(ctx, StatusWatchWorkflow, StatusWatchInput{
		Interval:     input.Interval,
		LastModified: lastModified,
		LastVersion:  lastVersion,
	})
}

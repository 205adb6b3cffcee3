package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// Every request is timed and counted by outcome. Game actions the rules turn
// down are counted as refused rather than as successes. Command names are the bare request type names, e.g. "BuyBuildingCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(logging.RequestName(request), time.Since(start).Seconds(), commandStatus(response, err))
		return response, err
	}
}

// gameOutcome is any response carrying the outcome of a game action
type gameOutcome interface {
	WasApplied() bool
}

func commandStatus(response mediator.Response, err error) string {
	if err != nil {
		return StatusError
	}
	if o, ok := response.(gameOutcome); ok && !o.WasApplied() {
		return StatusRefused
	}
	return StatusSuccess
}

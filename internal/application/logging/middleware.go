package logging

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/devempire-go/internal/application/mediator"
)

// Middleware logs every request at debug level and failures at error level.
// High-frequency tick commands can be muted by type name.
func Middleware(quiet ...string) mediator.Middleware {
	muted := make(map[string]bool, len(quiet))
	for _, name := range quiet {
		muted[name] = true
	}

	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		name := RequestName(request)
		start := time.Now()
		resp, err := next(ctx, request)

		logger := LoggerFromContext(ctx)
		if err != nil {
			logger.Log(LevelError, fmt.Sprintf("%s failed", name), map[string]interface{}{
				"request":  name,
				"duration": time.Since(start).String(),
				"error":    err.Error(),
			})
			return resp, err
		}
		if !muted[name] {
			logger.Log(LevelDebug, fmt.Sprintf("%s handled", name), map[string]interface{}{
				"request":  name,
				"duration": time.Since(start).String(),
			})
		}
		return resp, nil
	}
}

// RequestName is the bare type name of a request, e.g. "BuyBuildingCommand"
func RequestName(request mediator.Request) string {
	name := reflect.TypeOf(request).String()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}

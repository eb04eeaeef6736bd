// Package telemetry provides request trace id support.
package telemetry

import (
	"context"

	"github.com/hearthkeep/hearthkeep/sdk/cryptids"
)

type telKey int

const traceIDKey telKey = iota + 1

const noTrace = "--------NOTRACE--------"

type Telemetry struct{}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID attaches a fresh trace id to the context.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	tid, err := cryptids.GenerateID()
	if err != nil {
		return context.WithValue(ctx, traceIDKey, noTrace)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

// GetTraceID returns the trace id stored in the context.
func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return noTrace
	}
	return v
}

package model

import (
	"context"

	"github.com/google/uuid"
)

type cycleIDKey struct{}

// WithCycleID returns a context carrying the id of the cycle in flight.
func WithCycleID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, cycleIDKey{}, id)
}

// CycleID returns the cycle id stored in ctx, or uuid.Nil.
func CycleID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(cycleIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

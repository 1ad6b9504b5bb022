// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import "context"

// SystemActorID is the reserved creator for entries logged outside any
// request scope (schedulers, maintenance jobs).
const SystemActorID int64 = 1

type actorKey struct{}

type suppressKey struct{}

// WithActor returns a context carrying the acting user for subsequent Log
// calls. Hosts set this once per request from their authentication layer.
func WithActor(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the acting user for ctx, or SystemActorID when
// none was set.
func ActorFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(actorKey{}).(int64); ok {
		return id
	}
	return SystemActorID
}

// WithoutLogging returns a context in which Service.Log is a no-op. Bulk
// administrative corrections wrap their work in this scope so a thousand
// mechanical fixes do not flood the ledger. The toggle rides the context,
// never process state, so one request's bulk fix cannot silence another's
// audit entries.
func WithoutLogging(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressKey{}, true)
}

// LoggingSuppressed reports whether ctx is inside a WithoutLogging scope.
func LoggingSuppressed(ctx context.Context) bool {
	suppressed, _ := ctx.Value(suppressKey{}).(bool)
	return suppressed
}

package http

import (
	"context"
	"errors"
)

type contextKey string

const partyIDKey contextKey = "party-id"

var errNoParty = errors.New("caller identity missing from request context")

// WithPartyID returns a context carrying the authenticated caller.
func WithPartyID(ctx context.Context, partyID int64) context.Context {
	return context.WithValue(ctx, partyIDKey, partyID)
}

// PartyIDFromContext extracts the caller identity set by the auth
// middleware.
func PartyIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(partyIDKey).(int64)
	if !ok || id <= 0 {
		return 0, errNoParty
	}
	return id, nil
}

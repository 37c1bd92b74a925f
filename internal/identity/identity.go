// Package identity resolves the owner key that scopes every outline and
// timeline operation. Issuing identities (sessions, passwords) is an
// external concern; this package only answers "who is the caller" so the
// stores can filter by it.
package identity

import (
	"context"
	"errors"
)

// ErrNoOwner is returned when no owner key can be resolved.
var ErrNoOwner = errors.New("no owner configured")

// Resolver supplies the owner key for a request. Implementations must never
// return an empty key with a nil error.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Static resolves to a fixed owner key. The CLI wires it from config; tests
// use it to simulate distinct owners.
type Static struct {
	Owner string
}

func (s Static) Resolve(_ context.Context) (string, error) {
	if s.Owner == "" {
		return "", ErrNoOwner
	}
	return s.Owner, nil
}

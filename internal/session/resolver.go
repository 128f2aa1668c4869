package session

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Resolver turns a raw token into verified claims, consulting the
// revocation list.
type Resolver struct {
	manager *Manager
	revoker Revoker
}

func NewResolver(manager *Manager, revoker Revoker) *Resolver {
	return &Resolver{manager: manager, revoker: revoker}
}

func (r *Resolver) Manager() *Manager {
	return r.manager
}

// Resolve returns ErrInvalidToken for bad, expired or revoked tokens. A
// revocation store outage fails closed.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Claims, error) {
	claims, err := r.manager.Parse(token)
	if err != nil {
		return nil, err
	}

	if r.revoker != nil {
		revoked, err := r.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Error().Err(err).Msg("revocation lookup failed")
			return nil, ErrInvalidToken
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

func (r *Resolver) Revoke(ctx context.Context, claims *Claims) error {
	if r.revoker == nil {
		return nil
	}
	return r.revoker.Revoke(ctx, claims.ID, claims.ExpiresAtTime())
}

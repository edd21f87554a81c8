package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SessionToken lets Signer act for Authority on player-side requests until ValidUntil.
type SessionToken struct {
	Authority  solana.PublicKey `json:"authority"`
	Signer     solana.PublicKey `json:"signer"`
	ValidUntil int64            `json:"valid_until"`
	CreatedAt  int64            `json:"created_at"`
}

// IsLive reports whether the token authorizes requests at unix time now.
func (s SessionToken) IsLive(now int64) bool {
	return now < s.ValidUntil
}

func (s SessionToken) Validate() error {
	if s.Authority.IsZero() || s.Signer.IsZero() {
		return fmt.Errorf("session: authority and signer must be set")
	}
	if s.ValidUntil <= s.CreatedAt {
		return fmt.Errorf("session %s: expiry %d not after creation %d", s.Signer, s.ValidUntil, s.CreatedAt)
	}
	return nil
}

package auth

import (
	"errors"
	"time"

	"github.com/finwallet/wallet-server/token"
)

// Policy decides whether a request's token pair satisfies an
// authorization requirement. Each call is a pure function of its inputs
// apart from minting a replacement access token when the presented one
// has expired and the refresh token still validates.
type Policy struct {
	codec     *token.Codec
	accessTTL time.Duration
}

// NewPolicy creates a Policy minting replacement access tokens with the
// given ttl.
func NewPolicy(codec *token.Codec, accessTTL time.Duration) *Policy {
	return &Policy{codec: codec, accessTTL: accessTTL}
}

// Evaluate runs one authorization check. An empty token string counts
// as absent; either credential missing is a terminal Unauthorized.
//
// With a valid access token the requirement is checked against the
// access token's claims. With an expired access token the refresh
// token's claims become authoritative and a fresh access token is
// attached to the verdict - even when the requirement then fails, so
// the refresh stays transparent to the client.
func (p *Policy) Evaluate(accessToken, refreshToken string, requirement Requirement) Verdict {
	if accessToken == "" || refreshToken == "" {
		return denied(CauseUnauthorized)
	}

	accessClaims, accessErr := p.codec.Verify(accessToken)

	switch {
	case accessErr == nil:
		return p.evaluateValidAccess(accessClaims, refreshToken, requirement)

	case errors.Is(accessErr, token.ErrExpired):
		return p.evaluateExpiredAccess(refreshToken, requirement)

	default:
		// Bad signature or corrupt payload. No refresh is attempted for
		// a token that may be forged.
		return denied(accessErr.Error())
	}
}

func (p *Policy) evaluateValidAccess(accessClaims *token.Claims, refreshToken string, requirement Requirement) Verdict {
	refreshClaims, refreshErr := p.codec.Verify(refreshToken)
	if errors.Is(refreshErr, token.ErrExpired) {
		// The session outlives its refresh token only nominally; the
		// client has to re-authenticate before the access token lapses.
		return denied(CausePerformLoginAgain)
	}
	if refreshErr != nil {
		return denied(refreshErr.Error())
	}

	if !accessClaims.Complete() || !refreshClaims.Complete() {
		return denied(CauseMissingInformation)
	}
	if !accessClaims.Matches(refreshClaims) {
		return denied(CauseMismatchedUsers)
	}

	if cause, ok := requirement.check(accessClaims); !ok {
		return denied(cause)
	}
	return allowed("")
}

func (p *Policy) evaluateExpiredAccess(refreshToken string, requirement Requirement) Verdict {
	refreshClaims, refreshErr := p.codec.Verify(refreshToken)
	if errors.Is(refreshErr, token.ErrExpired) {
		return denied(CausePerformLoginAgain)
	}
	if refreshErr != nil {
		return denied(refreshErr.Error())
	}

	if !refreshClaims.Complete() {
		return denied(CauseMissingInformation)
	}

	// Reissue the access token from the refresh token's claims before
	// the requirement runs: the refresh must happen transparently even
	// when the request is then denied.
	newAccessToken, err := p.codec.Sign(token.Claims{
		Username: refreshClaims.Username,
		Email:    refreshClaims.Email,
		Role:     refreshClaims.Role,
		ID:       refreshClaims.ID,
	}, p.accessTTL)
	if err != nil {
		return denied(err.Error())
	}

	if cause, ok := requirement.check(refreshClaims); !ok {
		v := denied(cause)
		v.NewAccessToken = newAccessToken
		return v
	}
	return allowed(newAccessToken)
}

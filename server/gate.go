package server

import (
	"net/http"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/token"
)

// authorize is the gate every protected handler runs before doing any
// work. It extracts the token pair from the request cookies, asks the
// session policy for a verdict and applies the verdict's cookie effect:
// a reissued access token is persisted whether or not the request is
// ultimately allowed.
//
// On denial the returned cause is what the handler must surface as a
// 401 {"error": cause} body.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, requirement auth.Requirement) (bool, string) {
	verdict := s.policy.Evaluate(
		cookieValue(r, accessTokenCookie),
		cookieValue(r, refreshTokenCookie),
		requirement,
	)

	if verdict.NewAccessToken != "" {
		s.setAccessTokenCookie(w, verdict.NewAccessToken)
	}

	if !verdict.Allowed {
		return false, verdict.Cause
	}
	return true, ""
}

// authorizeAny accepts the request when any one of the requirements is
// satisfied, trying them in order. The cookie effect is applied at most
// once - every evaluation of the same pair mints for the same claims,
// so the first reissued token is the one persisted. On refusal the
// first requirement's cause is reported, matching the route's primary
// authorization mode.
func (s *Server) authorizeAny(w http.ResponseWriter, r *http.Request, requirements ...auth.Requirement) (bool, string) {
	accessToken := cookieValue(r, accessTokenCookie)
	refreshToken := cookieValue(r, refreshTokenCookie)

	firstCause := ""
	cookieSet := false
	for _, requirement := range requirements {
		verdict := s.policy.Evaluate(accessToken, refreshToken, requirement)
		if verdict.NewAccessToken != "" && !cookieSet {
			s.setAccessTokenCookie(w, verdict.NewAccessToken)
			cookieSet = true
		}
		if verdict.Allowed {
			return true, ""
		}
		if firstCause == "" {
			firstCause = verdict.Cause
		}
	}
	return false, firstCause
}

// deny is the standard translation of a gate refusal.
func deny(w http.ResponseWriter, cause string) {
	writeError(w, http.StatusUnauthorized, cause)
}

// callerClaims identifies the request's caller after the gate has
// allowed it. The refresh token is the one credential guaranteed valid
// on every allowed path, including a just-refreshed session.
func (s *Server) callerClaims(r *http.Request) (*token.Claims, error) {
	return s.codec.Verify(cookieValue(r, refreshTokenCookie))
}

// cookieValue returns the named cookie's value, treating a missing
// cookie and an empty value the same way.
func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) setAccessTokenCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    value,
		Path:     s.config.GetCookiePath(),
		MaxAge:   int(s.config.GetAccessTokenExpiry().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (s *Server) setRefreshTokenCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    value,
		Path:     s.config.GetCookiePath(),
		MaxAge:   int(s.config.GetRefreshTokenExpiry().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearSessionCookies resets both cookies to an empty value with a
// negative max-age, the logout contract.
func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     s.config.GetCookiePath(),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

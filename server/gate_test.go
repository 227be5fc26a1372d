package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finwallet/wallet-server/groups"
	"github.com/finwallet/wallet-server/internal/config"
	"github.com/finwallet/wallet-server/server"
	"github.com/finwallet/wallet-server/token"
	"github.com/finwallet/wallet-server/users"

	categoryrepo "github.com/finwallet/wallet-server/categories/repoinmemory"
	grouprepo "github.com/finwallet/wallet-server/groups/repoinmemory"
	transactionrepo "github.com/finwallet/wallet-server/transactions/repoinmemory"
	userrepo "github.com/finwallet/wallet-server/users/repoinmemory"
)

type serverFixture struct {
	server *server.Server
	codec  *token.Codec
	repos  server.Repos
}

func setupServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	cfg := config.New()
	repos := server.Repos{
		Users:        userrepo.NewUserRepo(),
		Groups:       grouprepo.NewGroupRepo(),
		Categories:   categoryrepo.NewCategoryRepo(),
		Transactions: transactionrepo.NewTransactionRepo(),
	}
	srv, err := server.New(cfg, repos)
	require.NoError(t, err)

	return &serverFixture{
		server: srv,
		codec:  token.NewCodec(cfg.GetTokenSecret()),
		repos:  repos,
	}
}

func (f *serverFixture) seedUser(t *testing.T, username, email, password string, role token.RoleType) *users.User {
	t.Helper()

	passwordHash, err := users.HashPassword(password)
	require.NoError(t, err)
	user := &users.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	require.NoError(t, f.repos.Users.Upsert(user))
	return user
}

func (f *serverFixture) signFor(t *testing.T, user *users.User, ttl time.Duration) string {
	t.Helper()
	signed, err := f.codec.Sign(user.Claims(), ttl)
	require.NoError(t, err)
	return signed
}

func withSession(r *http.Request, accessToken, refreshToken string) *http.Request {
	if accessToken != "" {
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: accessToken})
	}
	if refreshToken != "" {
		r.AddCookie(&http.Cookie{Name: "refreshToken", Value: refreshToken})
	}
	return r
}

func accessCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "accessToken" {
			return cookie
		}
	}
	return nil
}

func TestGateNoCookies(t *testing.T) {
	f := setupServerFixture(t)

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	require.Empty(t, rec.Result().Cookies(), "no cookie mutation on a credential-less request")
}

func TestGateRegularUserOnAdminRoute(t *testing.T) {
	f := setupServerFixture(t)
	user := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users", nil),
		f.signFor(t, user, time.Hour), f.signFor(t, user, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"You are not an Admin"}`, rec.Body.String())
	require.Nil(t, accessCookieFrom(rec), "no new cookie while the access token is valid")
}

func TestGateOwnUserRoute(t *testing.T) {
	f := setupServerFixture(t)
	user := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users/pippo", nil),
		f.signFor(t, user, time.Hour), f.signFor(t, user, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, accessCookieFrom(rec))
}

func TestGateTransparentRefreshOnAdminRoute(t *testing.T) {
	f := setupServerFixture(t)
	admin := f.seedUser(t, "admin", "admin@example.com", "password123", token.RoleAdmin)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users", nil),
		f.signFor(t, admin, -time.Minute), f.signFor(t, admin, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := accessCookieFrom(rec)
	require.NotNil(t, cookie, "expired access with valid refresh reissues the cookie")
	require.Equal(t, "/api", cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	require.Equal(t, 3600, cookie.MaxAge)

	claims, err := f.codec.Verify(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
}

func TestGateRefreshPersistsEvenWhenDenied(t *testing.T) {
	f := setupServerFixture(t)
	user := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users", nil),
		f.signFor(t, user, -time.Minute), f.signFor(t, user, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"You are not an Admin"}`, rec.Body.String())
	require.NotNil(t, accessCookieFrom(rec), "refresh is unconditional once the refresh token validates")
}

func TestGateBothTokensExpired(t *testing.T) {
	f := setupServerFixture(t)
	user := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users/pippo", nil),
		f.signFor(t, user, -time.Minute), f.signFor(t, user, -time.Minute))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Perform login again"}`, rec.Body.String())
	require.Nil(t, accessCookieFrom(rec))
}

func TestGateMismatchedUsers(t *testing.T) {
	f := setupServerFixture(t)
	pippo := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)
	pluto := f.seedUser(t, "pluto", "pluto@example.com", "password123", token.RoleRegular)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users/pippo", nil),
		f.signFor(t, pippo, time.Hour), f.signFor(t, pluto, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Mismatched users"}`, rec.Body.String())
}

func TestGateGroupRequirementFallsBackToAdmin(t *testing.T) {
	f := setupServerFixture(t)
	member := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)
	outsider := f.seedUser(t, "pluto", "pluto@example.com", "password123", token.RoleRegular)
	admin := f.seedUser(t, "admin", "admin@example.com", "password123", token.RoleAdmin)
	seedGroup(t, f, "family", member)

	// Member passes.
	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/groups/family", nil),
		f.signFor(t, member, time.Hour), f.signFor(t, member, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Admin passes without membership.
	rec = httptest.NewRecorder()
	req = withSession(httptest.NewRequest(http.MethodGet, "/api/groups/family", nil),
		f.signFor(t, admin, time.Hour), f.signFor(t, admin, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Non-member regular user is refused with the group cause.
	rec = httptest.NewRecorder()
	req = withSession(httptest.NewRequest(http.MethodGet, "/api/groups/family", nil),
		f.signFor(t, outsider, time.Hour), f.signFor(t, outsider, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Your email is not in the group"}`, rec.Body.String())
}

func TestGateForgedAccessToken(t *testing.T) {
	f := setupServerFixture(t)
	user := f.seedUser(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	forger := token.NewCodec([]byte("attacker-secret"))
	forged, err := forger.Sign(user.Claims(), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/users/pippo", nil),
		forged, f.signFor(t, user, 7*24*time.Hour))
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"`+token.ErrMalformed.Error()+`"}`, rec.Body.String())
	require.Nil(t, accessCookieFrom(rec))
}

func seedGroup(t *testing.T, f *serverFixture, name string, members ...*users.User) {
	t.Helper()

	group := &groups.Group{Name: name}
	for _, member := range members {
		group.Members = append(group.Members, groups.Member{Email: member.Email, UserID: member.ID})
	}
	require.NoError(t, f.repos.Groups.Upsert(group))
}

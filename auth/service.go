package auth

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	walleterrors "github.com/finwallet/wallet-server/internal/errors"
	"github.com/finwallet/wallet-server/token"
	"github.com/finwallet/wallet-server/users"
)

// TokenPair is the access/refresh credential pair minted at login. Both
// tokens carry identical claims.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service handles account registration and the session lifecycle:
// login mints the token pair and persists the refresh token on the
// account, logout nulls it.
type Service struct {
	userRepo   users.Repo
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowTime    func() time.Time
}

// ServiceOption modifies the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a Service with required dependencies.
func NewService(userRepo users.Repo, codec *token.Codec, accessTTL, refreshTTL time.Duration, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] user repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewService] token codec is required")
	}

	service := &Service{
		userRepo:   userRepo,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// Register creates an account with the given role. Username and email
// must be unused.
func (s *Service) Register(username, email, password string, role token.RoleType) (*users.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, errors.New("[Service.Register] username, email and password are required")
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, walleterrors.ErrUserAlreadyExists
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, walleterrors.ErrUserAlreadyExists
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	user := &users.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		DateJoined:   s.nowTime(),
	}
	if err := s.userRepo.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] userRepo.Upsert")
	}
	return user, nil
}

// Login verifies the credentials and mints a fresh token pair with
// identical claims. The refresh token is persisted on the account,
// overwriting whatever was there.
func (s *Service) Login(email, password string) (*users.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, walleterrors.ErrUserNotFound
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, walleterrors.ErrInvalidCredentials
	}

	claims := user.Claims()
	accessToken, err := s.codec.Sign(claims, s.accessTTL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[Service.Login] sign access token")
	}
	refreshToken, err := s.codec.Sign(claims, s.refreshTTL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[Service.Login] sign refresh token")
	}

	if err := s.userRepo.SetRefreshToken(user.Username, refreshToken); err != nil {
		return nil, nil, errors.Wrap(err, "[Service.Login] userRepo.SetRefreshToken")
	}

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout resolves the account holding the given refresh token and nulls
// it. Revocation is best effort: a request already in flight with the
// old pair is not killed.
func (s *Service) Logout(refreshToken string) error {
	user, err := s.userRepo.GetByRefreshToken(refreshToken)
	if err != nil {
		return walleterrors.ErrUserNotFound
	}
	if err := s.userRepo.SetRefreshToken(user.Username, ""); err != nil {
		return errors.Wrap(err, "[Service.Logout] userRepo.SetRefreshToken")
	}
	return nil
}

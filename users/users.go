package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/finwallet/wallet-server/token"
)

// User is a wallet account. RefreshToken holds the account's current
// long-lived credential; login overwrites it and logout nulls it, which
// is the only durable side effect the auth core asks of storage.
type User struct {
	ID           string         `json:"id,omitempty"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"` // never serialize
	Role         token.RoleType `json:"role"`
	RefreshToken string         `json:"-"`
	DateJoined   time.Time      `json:"date_joined,omitempty"`
}

// Claims returns the claims a session token for this account carries.
func (u *User) Claims() token.Claims {
	return token.Claims{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		ID:       u.ID,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == token.RoleAdmin
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

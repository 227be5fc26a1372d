package users

// Repo is the account directory boundary. Implementations mirror the
// document store's findOne/find/create/update semantics over the users
// collection.
type Repo interface {
	Upsert(user *User) error
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByRefreshToken(refreshToken string) (*User, error)
	SetRefreshToken(username, refreshToken string) error
	List() ([]*User, error)
	Delete(username string) error
}

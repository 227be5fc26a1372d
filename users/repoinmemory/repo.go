package repoinmemory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/finwallet/wallet-server/internal/errors"
	"github.com/finwallet/wallet-server/users"
)

var _ users.Repo = (*UserRepo)(nil)

type UserRepo struct {
	users    map[string]*users.User // keyed by username
	emailIdx map[string]string      // email to username
	lock     sync.RWMutex
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:    make(map[string]*users.User),
		emailIdx: make(map[string]string),
	}
}

func (ur *UserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.Username] = user
	ur.emailIdx[user.Email] = user.Username
	return nil
}

func (ur *UserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[username]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *UserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	username, ok := ur.emailIdx[email]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	copied := *ur.users[username]
	return &copied, nil
}

func (ur *UserRepo) GetByRefreshToken(refreshToken string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if refreshToken == "" {
		return nil, errors.ErrUserNotFound
	}
	for _, user := range ur.users {
		if user.RefreshToken == refreshToken {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (ur *UserRepo) SetRefreshToken(username, refreshToken string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[username]
	if !ok {
		return errors.ErrUserNotFound
	}
	user.RefreshToken = refreshToken
	return nil
}

func (ur *UserRepo) List() ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.User, 0, len(ur.users))
	for _, user := range ur.users {
		copied := *user
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

func (ur *UserRepo) Delete(username string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[username]
	if !ok {
		return errors.ErrUserNotFound
	}
	delete(ur.emailIdx, user.Email)
	delete(ur.users, username)
	return nil
}

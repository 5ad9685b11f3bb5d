package jsonfile

import (
	"context"

	"github.com/example/roombook/internal/persistence"
)

// UserRepository implements persistence.UserRepository on users.json.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository backed by the store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) path() string {
	return r.store.filePath(usersFileName)
}

// LoadUsers returns the full registry mapping. An absent file is an empty
// registry; corrupt content is an error.
func (r *UserRepository) LoadUsers(ctx context.Context) (map[string]persistence.User, error) {
	var users map[string]persistence.User
	err := r.store.withPathLock(r.path(), func() error {
		_, err := r.store.readJSON(r.path(), &users)
		return err
	})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = make(map[string]persistence.User)
	}
	return users, nil
}

// SaveUsers persists the registry wholesale.
func (r *UserRepository) SaveUsers(ctx context.Context, users map[string]persistence.User) error {
	if users == nil {
		users = make(map[string]persistence.User)
	}
	return r.store.withPathLock(r.path(), func() error {
		return r.store.writeJSON(r.path(), users)
	})
}

// AddUser inserts a user, holding the registry lock across the full
// read-check-write sequence. It reports false without writing when the
// identifier is already registered; the existing record is untouched.
func (r *UserRepository) AddUser(ctx context.Context, id string, user persistence.User) (bool, error) {
	added := false
	err := r.store.withPathLock(r.path(), func() error {
		var users map[string]persistence.User
		if _, err := r.store.readJSON(r.path(), &users); err != nil {
			return err
		}
		if users == nil {
			users = make(map[string]persistence.User)
		}
		if _, exists := users[id]; exists {
			return nil
		}
		users[id] = user
		if err := r.store.writeJSON(r.path(), users); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

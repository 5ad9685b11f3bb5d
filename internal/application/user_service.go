package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/roombook/internal/persistence"
)

// UserRegistry captures the persistence operations needed by the user service.
type UserRegistry interface {
	LoadUsers(ctx context.Context) (map[string]persistence.User, error)
	AddUser(ctx context.Context, id string, user persistence.User) (bool, error)
}

// UserService orchestrates validation and persistence for the user registry.
type UserService struct {
	users  UserRegistry
	logger *slog.Logger
}

// NewUserService wires dependencies for the user service.
func NewUserService(users UserRegistry) *UserService {
	return NewUserServiceWithLogger(users, nil)
}

// NewUserServiceWithLogger constructs a user service with a specified logger.
func NewUserServiceWithLogger(users UserRegistry, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: defaultLogger(logger)}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// AddUser registers a user. Registering an already known identifier is a
// logged no-op that leaves the stored record untouched.
func (s *UserService) AddUser(ctx context.Context, input UserInput) (added bool, err error) {
	if s == nil {
		err = fmt.Errorf("UserService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AddUser", "user_id", input.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if !added {
			logger.InfoContext(ctx, "user already registered, keeping existing record")
			return
		}
		logger.InfoContext(ctx, "user added")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.ID) == "" {
		vErr.add("id", "must not be empty")
	}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "must not be empty")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.users == nil {
		err = fmt.Errorf("user registry not configured")
		return
	}

	user := persistence.User{
		Name:     strings.TrimSpace(input.Name),
		Nickname: strings.TrimSpace(input.Nickname),
	}
	added, err = s.users.AddUser(ctx, strings.TrimSpace(input.ID), user)
	return
}

// Users returns the full registry mapping.
func (s *UserService) Users(ctx context.Context) (map[string]persistence.User, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	if s.users == nil {
		return nil, fmt.Errorf("user registry not configured")
	}
	return s.users.LoadUsers(ctx)
}

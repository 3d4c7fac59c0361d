package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/internal/domain/repository"
	"github.com/movalle/proyectra/pkg/helpers"
)

// UserService handles registration, credential checks and the admin
// user CRUD. Passwords are always bcrypt-hashed before they reach the
// repository.
type UserService struct {
	Users    repository.UserRepository
	Projects repository.ProjectRepository
	Logger   *logrus.Logger
}

func NewUserService(users repository.UserRepository, projects repository.ProjectRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Projects: projects, Logger: logger}
}

// UserInput carries the mutable user fields from a form submission.
type UserInput struct {
	Username string
	Password string
	Role     entity.Role
}

func (s *UserService) validate(in UserInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return apperr.Validation("username", "must not be empty")
	}
	if in.Password == "" {
		return apperr.Validation("password", "must not be empty")
	}
	if in.Role != "" && !in.Role.Valid() {
		return apperr.Validation("role", "must be USER or ADMIN")
	}
	return nil
}

// Register creates a new account. The plaintext password never hits the
// database; an already-taken username is a conflict.
func (s *UserService) Register(ctx context.Context, in UserInput) (*entity.User, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperr.Conflict("username already taken")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}

	u := &entity.User{Username: in.Username, Password: hash, Role: role}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u, nil
}

// FindByUsername returns the matching user or apperr.ErrNotFound.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.Users.GetByUsername(ctx, username)
}

// Authenticate verifies the credentials and returns the user whose
// username and role seed the session principal. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

// Update overwrites username, role and password (re-hashed) of an
// existing user.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u.Username = in.Username
	u.Password = hash
	if in.Role != "" {
		u.Role = in.Role
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account. Accounts that still own projects are
// protected; the projects must be deleted or reassigned first.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.Projects.CountByOwner(ctx, u.Username)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("cannot delete a user that still owns projects")
	}

	return s.Users.Delete(ctx, id)
}

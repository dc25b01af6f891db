package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"event_management/internal/domain"
	"event_management/internal/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserService registers, updates and authenticates users.
type UserService struct {
	store      store.Gateway
	bcryptCost int
}

// NewUserService wires dependencies for the user service. A cost outside
// bcrypt's range falls back to bcrypt.DefaultCost.
func NewUserService(gw store.Gateway, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{store: gw, bcryptCost: bcryptCost}
}

// RegisterUserParams is the input of RegisterUser.
type RegisterUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// UpdateUserParams is the input of UpdateUser. Empty Email and Password keep
// the stored values.
type UpdateUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		vErr := &ValidationError{}
		vErr.Add("password", "Password must be at most 72 bytes")
		return "", vErr
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RegisterUser stores a new user with a hashed password. The role defaults to
// USER.
func (s *UserService) RegisterUser(ctx context.Context, params RegisterUserParams) (*domain.User, error) {
	email := normalizeEmail(params.Email)
	logrus.WithField("email", email).Info("Attempting to register user")

	vErr := &ValidationError{}
	if !validEmail(email) {
		vErr.Add("email", "A valid email is required")
	}
	if params.Password == "" {
		vErr.Add("password", "Password is required")
	}
	if params.Role != "" && !params.Role.Valid() {
		vErr.Add("role", "Role must be USER, ORGANIZER or ADMIN")
	}
	if err := vErr.errOrNil(); err != nil {
		return nil, err
	}

	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		logrus.WithField("email", email).Error("Registration failed: email already in use")
		return nil, ErrEmailInUse
	}

	hash, err := s.hash(params.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Role:      params.Role,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	logrus.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// UpdateUser always overwrites the names. The email changes only when it
// differs and is unused; the password only when a new one is given.
func (s *UserService) UpdateUser(ctx context.Context, id uint, params UpdateUserParams) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(params.FirstName)
	user.LastName = strings.TrimSpace(params.LastName)

	if email := normalizeEmail(params.Email); email != "" && email != user.Email {
		if !validEmail(email) {
			vErr := &ValidationError{}
			vErr.Add("email", "A valid email is required")
			return nil, vErr
		}
		exists, err := s.store.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			logrus.WithField("email", email).Error("Update failed: email already in use")
			return nil, ErrEmailInUse
		}
		user.Email = email
	}

	if params.Password != "" {
		hash, err := s.hash(params.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	logrus.WithField("user_id", id).Info("User updated")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.store.FindUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("User", id)
	}
	return user, err
}

// ListUsers returns one page of users and the total count. Pages start at 1.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	return s.store.ListUsers(ctx, (page-1)*pageSize, pageSize)
}

// Authenticate checks an email/password pair.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

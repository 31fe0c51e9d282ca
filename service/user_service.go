package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
	"ridehub/storage"
)

var (
	ErrEmailTaken         = errors.New("an account with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type SignUpRequest struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Role     models.Role
	CarType  string // providers only
}

type UserService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	UpdateLocation(ctx context.Context, email string, coords models.Coordinates) error
	Providers(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userService struct {
	users    storage.IUserStorage
	bookings storage.IBookingStorage
	sessions storage.ISessionStorage
	log      logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{
		users:    stg.User(),
		bookings: stg.Booking(),
		sessions: stg.Session(),
		log:      log,
	}
}

// SignUp creates the account and logs it in, like the original signup form
// did. Passwords are stored as-is: this is demo data in a local store, not an
// authentication system.
func (s *userService) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Role:     req.Role,
	}
	if user.Role == models.RoleProvider {
		user.CarType = req.CarType
	}

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", user.Name},
		{"phone", user.Phone},
		{"email", user.Email},
		{"password", user.Password},
		{"role", string(user.Role)},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	if err := s.users.Append(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, models.Session{Email: user.Email, Role: user.Role, Name: user.Name}); err != nil {
		return nil, err
	}

	s.log.Info("account created", logger.String("email", user.Email), logger.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	if err := s.sessions.Set(ctx, models.Session{Email: user.Email, Role: user.Role, Name: user.Name}); err != nil {
		return nil, err
	}
	s.log.Info("login", logger.String("email", user.Email))
	return user, nil
}

func (s *userService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *userService) Current(ctx context.Context) (*models.Session, error) {
	return s.sessions.Get(ctx)
}

// UpdateLocation stamps a fresh geolocation fix on the user record. For
// customers the fix is also copied onto their own bookings, the way the
// original location watcher kept pickup positions current.
func (s *userService) UpdateLocation(ctx context.Context, email string, coords models.Coordinates) error {
	users, revision, err := s.users.Load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range users {
		if users[i].Email == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrUserNotFound
	}
	lat, lng := coords.Latitude, coords.Longitude
	users[idx].Lat, users[idx].Lng = &lat, &lng
	if err := s.users.Save(ctx, users, revision); err != nil {
		return err
	}

	if users[idx].Role != models.RoleCustomer {
		return nil
	}
	bookings, bRevision, err := s.bookings.Load(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range bookings {
		if bookings[i].UserEmail == email {
			bookings[i].Lat, bookings[i].Lng = &lat, &lng
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.bookings.Save(ctx, bookings, bRevision)
}

func (s *userService) Providers(ctx context.Context) ([]models.User, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	var providers []models.User
	for _, u := range users {
		if u.Role == models.RoleProvider {
			providers = append(providers, u)
		}
	}
	return providers, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

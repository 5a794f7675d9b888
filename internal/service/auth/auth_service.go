package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (int64, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	EditProfile(ctx context.Context, userID int64, input EditProfileInput) (*domain.User, error)
}

// Sessions is the server-side session store: opaque id to user id.
type Sessions interface {
	CreateSession(ctx context.Context, sessionID string, userID int64) error
	GetSession(ctx context.Context, sessionID string) (int64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type AuthService struct {
	users      repository.UserRepository
	sessions   Sessions
	bcryptCost int
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Surname  string
}

type EditProfileInput struct {
	Email       string
	Name        string
	Surname     string
	Password    string
	NewPassword string
}

func NewAuthService(users repository.UserRepository, sessions Sessions, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
		Surname:  input.Surname,
		Role:     domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login folds "unknown email" and "wrong password" into one error so the
// response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.CreateSession(ctx, sessionID, user.ID); err != nil {
		return "", nil, err
	}
	return sessionID, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteSession(ctx, sessionID)
}

func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, domain.ErrNoSession
	}
	return s.sessions.GetSession(ctx, sessionID)
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) EditProfile(ctx context.Context, userID int64, input EditProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if err != domain.ErrUserNotFound {
			return nil, err
		}
		user.Email = input.Email
	}

	// Changing the password requires the current one to match first.
	if input.Password != "" && input.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			return nil, domain.ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Surname != "" {
		user.Surname = input.Surname
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

var _ AuthUseCase = (*AuthService)(nil)

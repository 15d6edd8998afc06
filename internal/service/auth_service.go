package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/domain"
	"github.com/spec-kit/caelum-portal/internal/events"
	"github.com/spec-kit/caelum-portal/internal/repository"
	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

var (
	ErrEmailTaken         = apperrors.NewConflict("User with this email already exists")
	ErrInvalidCredentials = apperrors.NewUnauthorized("Invalid email or password")
	ErrUserNotFound       = apperrors.NewNotFound("User not found")
)

// IssuedToken is a freshly minted credential.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	UserType domain.UserType
}

// AuthService coordinates registration and login flows for both principal types.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	codec      *auth.Codec
	hasher     *auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	AdminRepo  repository.AdminRepository
	Codec      *auth.Codec
	Hasher     *auth.PasswordHasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service. Dispatcher and Logger are optional.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		codec:      deps.Codec,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// RegisterUser creates an account and mints a token for it. No cookie is involved.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*domain.User, IssuedToken, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, IssuedToken{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, IssuedToken{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, IssuedToken{}, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     in.UserType,
		Role:         domain.RoleForUserType(in.UserType),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can pass the lookup above and lose on insert.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, IssuedToken{}, ErrEmailTaken
		}
		return nil, IssuedToken{}, fmt.Errorf("create user: %w", err)
	}

	issued, err := s.mintUser(user)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	s.publish(ctx, events.Event{Type: events.EventUserRegistered, Principal: domain.PrincipalUser, SubjectID: user.ID})
	return user, issued, nil
}

// LoginUser authenticates a site user by email and password.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, IssuedToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.loginFailed(ctx, domain.PrincipalUser, email)
			return nil, IssuedToken{}, ErrInvalidCredentials
		}
		return nil, IssuedToken{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(ctx, domain.PrincipalUser, email)
		return nil, IssuedToken{}, ErrInvalidCredentials
	}

	issued, err := s.mintUser(user)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	s.publish(ctx, events.Event{Type: events.EventUserLoggedIn, Principal: domain.PrincipalUser, SubjectID: user.ID})
	return user, issued, nil
}

// LoginAdmin authenticates an admin console operator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.AdminUser, IssuedToken, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.loginFailed(ctx, domain.PrincipalAdmin, email)
			return nil, IssuedToken{}, ErrInvalidCredentials
		}
		return nil, IssuedToken{}, fmt.Errorf("lookup admin: %w", err)
	}
	if !s.hasher.Verify(password, admin.PasswordHash) {
		s.loginFailed(ctx, domain.PrincipalAdmin, email)
		return nil, IssuedToken{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.MintAdmin(auth.AdminClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
	})
	if err != nil {
		return nil, IssuedToken{}, fmt.Errorf("mint admin token: %w", err)
	}
	s.publish(ctx, events.Event{Type: events.EventAdminLoggedIn, Principal: domain.PrincipalAdmin, SubjectID: admin.ID})
	return admin, IssuedToken{Token: token, ExpiresAt: expiresAt}, nil
}

// CurrentUser loads the account a verified claim refers to.
func (s *AuthService) CurrentUser(ctx context.Context, claims *auth.UserClaims) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// Logout records the event. Tokens are stateless, so nothing is revoked.
func (s *AuthService) Logout(ctx context.Context, pt domain.PrincipalType) {
	s.publish(ctx, events.Event{Type: events.EventLoggedOut, Principal: pt})
}

func (s *AuthService) mintUser(user *domain.User) (IssuedToken, error) {
	token, expiresAt, err := s.codec.MintUser(auth.UserClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		UserType: user.UserType,
	})
	if err != nil {
		return IssuedToken{}, fmt.Errorf("mint user token: %w", err)
	}
	return IssuedToken{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, pt domain.PrincipalType, email string) {
	s.publish(ctx, events.Event{Type: events.EventLoginFailed, Principal: pt, Email: email})
}

func (s *AuthService) publish(ctx context.Context, e events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, e); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(e.Type)), zap.Error(err))
	}
}

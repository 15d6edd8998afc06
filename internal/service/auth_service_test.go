package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/domain"
	"github.com/spec-kit/caelum-portal/internal/events"
	"github.com/spec-kit/caelum-portal/internal/repository"
)

type authFixture struct {
	svc    *AuthService
	codec  *auth.Codec
	hasher *auth.PasswordHasher
	users  repository.UserRepository
	admins repository.AdminRepository
	events []events.Event
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		codec:  auth.NewCodec(auth.NewSecrets("user-secret", "admin-secret")),
		hasher: auth.NewPasswordHasher(bcrypt.MinCost),
		users:  repository.NewMemoryUserRepository(),
		admins: repository.NewMemoryAdminRepository(),
	}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{events.EventUserRegistered, events.EventUserLoggedIn, events.EventAdminLoggedIn, events.EventLoginFailed, events.EventLoggedOut} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.events = append(f.events, e)
			return nil
		})
	}
	f.svc = NewAuthService(AuthDependencies{
		UserRepo:   f.users,
		AdminRepo:  f.admins,
		Codec:      f.codec,
		Hasher:     f.hasher,
		Dispatcher: dispatcher,
	})
	return f
}

func (f *authFixture) eventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func TestRegisterUser_DerivesRoleAndMintsToken(t *testing.T) {
	tests := []struct {
		userType domain.UserType
		role     domain.UserRole
	}{
		{domain.UserTypeInvestor, domain.UserRoleInvestor},
		{domain.UserTypeTeacher, domain.UserRoleTeacher},
		{domain.UserTypeSuperAdmin, domain.UserRoleSuperAdmin},
	}

	for _, tt := range tests {
		t.Run(string(tt.userType), func(t *testing.T) {
			f := newAuthFixture(t)
			user, issued, err := f.svc.RegisterUser(context.Background(), RegisterInput{
				Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: tt.userType,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
			assert.NotEqual(t, "Secret123", user.PasswordHash)
			assert.True(t, f.hasher.Verify("Secret123", user.PasswordHash))

			claims, ok := f.codec.VerifyUser(issued.Token)
			require.True(t, ok)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.userType, claims.UserType)
			assert.Equal(t, []events.EventType{events.EventUserRegistered}, f.eventTypes())
		})
	}
}

func TestRegisterUser_RejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	in := RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: domain.UserTypeTeacher}

	_, _, err := f.svc.RegisterUser(context.Background(), in)
	require.NoError(t, err)
	_, _, err = f.svc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	registered, _, err := f.svc.RegisterUser(ctx, RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: domain.UserTypeInvestor})
	require.NoError(t, err)

	user, issued, err := f.svc.LoginUser(ctx, "grace@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	_, ok := f.codec.VerifyUser(issued.Token)
	assert.True(t, ok)
	_, ok = f.codec.VerifyAdmin(issued.Token)
	assert.False(t, ok)

	_, _, err = f.svc.LoginUser(ctx, "grace@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.svc.LoginUser(ctx, "nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, []events.EventType{
		events.EventUserRegistered,
		events.EventUserLoggedIn,
		events.EventLoginFailed,
		events.EventLoginFailed,
	}, f.eventTypes())
}

func TestLoginAdmin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	hash, err := f.hasher.Hash("admin123")
	require.NoError(t, err)
	seeded := &domain.AdminUser{Email: "admin@caelum.com", Name: "Super Admin", PasswordHash: hash, Role: "SuperAdmin"}
	require.NoError(t, f.admins.Upsert(ctx, seeded))

	admin, issued, err := f.svc.LoginAdmin(ctx, "admin@caelum.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, admin.ID)

	claims, ok := f.codec.VerifyAdmin(issued.Token)
	require.True(t, ok)
	assert.Equal(t, seeded.ID, claims.AdminID)
	assert.Equal(t, "SuperAdmin", claims.Role)
	_, ok = f.codec.VerifyUser(issued.Token)
	assert.False(t, ok)

	_, _, err = f.svc.LoginAdmin(ctx, "admin@caelum.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, _, err := f.svc.RegisterUser(ctx, RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: domain.UserTypeTeacher})
	require.NoError(t, err)

	got, err := f.svc.CurrentUser(ctx, &auth.UserClaims{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = f.svc.CurrentUser(ctx, &auth.UserClaims{UserID: "deleted"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type failingUserRepo struct {
	repository.UserRepository
}

func (failingUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection reset")
}

func TestLoginUser_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	svc := NewAuthService(AuthDependencies{UserRepo: failingUserRepo{}, Codec: f.codec, Hasher: f.hasher})

	_, _, err := svc.LoginUser(context.Background(), "grace@example.com", "Secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

type racingUserRepo struct {
	repository.UserRepository
}

func (racingUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (racingUserRepo) Create(_ context.Context, user *domain.User) error {
	return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicateEmail)
}

func TestRegisterUser_DuplicateOnInsertIsConflict(t *testing.T) {
	f := newAuthFixture(t)
	svc := NewAuthService(AuthDependencies{UserRepo: racingUserRepo{}, Codec: f.codec, Hasher: f.hasher})

	_, _, err := svc.RegisterUser(context.Background(), RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: domain.UserTypeTeacher})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_EmailCaseIsIgnored(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.RegisterUser(ctx, RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: domain.UserTypeTeacher})
	require.NoError(t, err)
	_, _, err = f.svc.RegisterUser(ctx, RegisterInput{Name: "Grace", Email: "GRACE@example.com", Password: "Secret123", UserType: domain.UserTypeTeacher})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

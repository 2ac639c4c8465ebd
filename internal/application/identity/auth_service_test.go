package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/identity"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/agrihub/backend/internal/infrastructure/auth"
	"github.com/agrihub/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Lightweight fakes for the gamification provisioning dependencies.

type fakeStreakRepo struct{ saved []*gamification.Streak }

func (f *fakeStreakRepo) FindForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.Streak, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeStreakRepo) FindBrokenBefore(ctx context.Context, cutoff time.Time, limit int) ([]gamification.Streak, error) {
	return nil, nil
}
func (f *fakeStreakRepo) Save(ctx context.Context, s *gamification.Streak) error {
	f.saved = append(f.saved, s)
	return nil
}
func (f *fakeStreakRepo) SaveWithLock(ctx context.Context, s *gamification.Streak) error {
	return f.Save(ctx, s)
}

type fakeProfileRepo struct{ saved []*gamification.Profile }

func (f *fakeProfileRepo) FindForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.Profile, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeProfileRepo) TopByXP(ctx context.Context, limit int) ([]gamification.LeaderboardEntry, error) {
	return nil, nil
}
func (f *fakeProfileRepo) RankForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.LeaderboardEntry, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeProfileRepo) Save(ctx context.Context, p *gamification.Profile) error {
	f.saved = append(f.saved, p)
	return nil
}
func (f *fakeProfileRepo) SaveWithLock(ctx context.Context, p *gamification.Profile) error {
	return f.Save(ctx, p)
}

type fakeMissionRepo struct{ missions []gamification.Mission }

func (f *fakeMissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*gamification.Mission, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeMissionRepo) FindByCode(ctx context.Context, code string) (*gamification.Mission, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeMissionRepo) FindAll(ctx context.Context, filter gamification.MissionFilter) ([]gamification.Mission, error) {
	return f.missions, nil
}
func (f *fakeMissionRepo) FindByActivityKey(ctx context.Context, key string) ([]gamification.Mission, error) {
	return nil, nil
}
func (f *fakeMissionRepo) Save(ctx context.Context, m *gamification.Mission) error { return nil }
func (f *fakeMissionRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

type fakeProgressRepo struct{ saved []*gamification.MissionProgress }

func (f *fakeProgressRepo) FindByID(ctx context.Context, id uuid.UUID) (*gamification.MissionProgress, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeProgressRepo) FindForOwnerAndMission(ctx context.Context, ownerID, missionID uuid.UUID) (*gamification.MissionProgress, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeProgressRepo) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter gamification.ProgressFilter) ([]gamification.MissionProgress, error) {
	return nil, nil
}
func (f *fakeProgressRepo) FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]gamification.MissionProgress, error) {
	return nil, nil
}
func (f *fakeProgressRepo) FindWithExpiredBonus(ctx context.Context, asOf time.Time, limit int) ([]gamification.MissionProgress, error) {
	return nil, nil
}
func (f *fakeProgressRepo) Save(ctx context.Context, p *gamification.MissionProgress) error {
	f.saved = append(f.saved, p)
	return nil
}
func (f *fakeProgressRepo) SaveWithLock(ctx context.Context, p *gamification.MissionProgress) error {
	return f.Save(ctx, p)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "agrihub-test",
		MaxRefreshCount:        10,
	})
}

func newTestAuthService(userRepo identity.UserRepository) (*AuthService, *fakeStreakRepo, *fakeProfileRepo, *fakeProgressRepo) {
	streaks := &fakeStreakRepo{}
	profiles := &fakeProfileRepo{}
	progress := &fakeProgressRepo{}
	missions := &fakeMissionRepo{}

	starter, _ := gamification.NewMission("first_field", "Map your first field", "Get started", 50, 0)
	_, _ = starter.AddStep("Create a field", "", "field_created")
	missions.missions = []gamification.Mission{*starter}

	svc := NewAuthService(
		userRepo, streaks, profiles, missions, progress,
		newTestJWTService(), nil, nil,
		DefaultAuthServiceConfig(), zap.NewNop(),
	)
	return svc, streaks, profiles, progress
}

func TestAuthService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByUsername", mock.Anything, "greenfarmer").Return(false, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	svc, streaks, profiles, progress := newTestAuthService(userRepo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Username: "greenfarmer",
		Password: "correct-horse-battery",
		Region:   "Nakuru",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "greenfarmer", result.User.Username)
	assert.Equal(t, "Nakuru", result.User.Region)

	// Signup provisions streak, profile and starter missions
	require.Len(t, streaks.saved, 1)
	require.Len(t, profiles.saved, 1)
	require.Len(t, progress.saved, 1)
	assert.Equal(t, streaks.saved[0].OwnerID, result.User.ID)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByUsername", mock.Anything, "greenfarmer").Return(true, nil)

	svc, _, _, _ := newTestAuthService(userRepo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "greenfarmer",
		Password: "correct-horse-battery",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
}

func TestAuthService_Login(t *testing.T) {
	user, err := identity.NewUser("greenfarmer", "correct-horse-battery")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "greenfarmer").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	svc, _, _, _ := newTestAuthService(userRepo)

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "greenfarmer",
		Password: "correct-horse-battery",
		IP:       "10.0.0.7",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "10.0.0.7", user.LastLoginIP)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	user, err := identity.NewUser("greenfarmer", "correct-horse-battery")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "greenfarmer").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	svc, _, _, _ := newTestAuthService(userRepo)

	_, err = svc.Login(context.Background(), LoginInput{
		Username: "greenfarmer",
		Password: "wrong-password",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_LocksAfterMaxAttempts(t *testing.T) {
	user, err := identity.NewUser("greenfarmer", "correct-horse-battery")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "greenfarmer").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	svc, _, _, _ := newTestAuthService(userRepo)

	ctx := context.Background()
	for i := 0; i < DefaultAuthServiceConfig().MaxLoginAttempts; i++ {
		_, err = svc.Login(ctx, LoginInput{Username: "greenfarmer", Password: "wrong"})
		require.Error(t, err)
	}

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	assert.True(t, user.IsLocked())

	// Even the right password is rejected while locked
	_, err = svc.Login(ctx, LoginInput{Username: "greenfarmer", Password: "correct-horse-battery"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_RefreshToken(t *testing.T) {
	user, err := identity.NewUser("greenfarmer", "correct-horse-battery")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "greenfarmer").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	svc, _, _, _ := newTestAuthService(userRepo)

	login, err := svc.Login(context.Background(), LoginInput{
		Username: "greenfarmer",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _, _, _ := newTestAuthService(userRepo)

	_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: "not-a-token",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	user, err := identity.NewUser("greenfarmer", "correct-horse-battery")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc, _, _, _ := newTestAuthService(userRepo)

	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrong",
		NewPassword: "new-long-password",
	})

	require.Error(t, err)
}

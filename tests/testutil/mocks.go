package testutil

import (
	"context"
	"time"

	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/oauth"
	"github.com/tripkin/tripkin-api/internal/schedule"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCircleService mocks the CircleService
type MockCircleService struct {
	mock.Mock
}

func (m *MockCircleService) Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Circle, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Circle), args.Error(1)
}

func (m *MockCircleService) GetByID(ctx context.Context, circleID uuid.UUID) (*models.Circle, error) {
	args := m.Called(ctx, circleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Circle), args.Error(1)
}

func (m *MockCircleService) GetUserCircles(ctx context.Context, userID uuid.UUID) ([]models.Circle, []string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Circle), args.Get(1).([]string), args.Error(2)
}

func (m *MockCircleService) Update(ctx context.Context, circleID uuid.UUID, name string) (*models.Circle, error) {
	args := m.Called(ctx, circleID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Circle), args.Error(1)
}

func (m *MockCircleService) Delete(ctx context.Context, circleID uuid.UUID) error {
	args := m.Called(ctx, circleID)
	return args.Error(0)
}

func (m *MockCircleService) IsOwner(ctx context.Context, circleID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, circleID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCircleService) IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, circleID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCircleService) GetMembers(ctx context.Context, circleID uuid.UUID) ([]models.CircleMember, error) {
	args := m.Called(ctx, circleID)
	return args.Get(0).([]models.CircleMember), args.Error(1)
}

func (m *MockCircleService) RemoveMember(ctx context.Context, circleID, userID uuid.UUID) error {
	args := m.Called(ctx, circleID, userID)
	return args.Error(0)
}

func (m *MockCircleService) CreateInvite(ctx context.Context, circleID, inviterID, inviteeID uuid.UUID) (*models.CircleInvite, error) {
	args := m.Called(ctx, circleID, inviterID, inviteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CircleInvite), args.Error(1)
}

func (m *MockCircleService) GetUserPendingInvites(ctx context.Context, userID uuid.UUID) ([]models.CircleInvite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.CircleInvite), args.Error(1)
}

func (m *MockCircleService) AcceptInvite(ctx context.Context, inviteID, userID uuid.UUID) error {
	args := m.Called(ctx, inviteID, userID)
	return args.Error(0)
}

func (m *MockCircleService) DeclineInvite(ctx context.Context, inviteID, userID uuid.UUID) error {
	args := m.Called(ctx, inviteID, userID)
	return args.Error(0)
}

func (m *MockCircleService) CancelInvite(ctx context.Context, inviteID, circleID uuid.UUID) error {
	args := m.Called(ctx, inviteID, circleID)
	return args.Error(0)
}

// MockTripService mocks the TripService
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) Create(ctx context.Context, params services.CreateTripParams) (*models.Trip, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) GetByID(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) GetCircleTrips(ctx context.Context, circleID uuid.UUID) ([]models.Trip, error) {
	args := m.Called(ctx, circleID)
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripService) Join(ctx context.Context, tripID, userID uuid.UUID) error {
	args := m.Called(ctx, tripID, userID)
	return args.Error(0)
}

func (m *MockTripService) Leave(ctx context.Context, tripID, userID uuid.UUID) error {
	args := m.Called(ctx, tripID, userID)
	return args.Error(0)
}

func (m *MockTripService) IsActiveMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tripID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTripService) OpenScheduling(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, tripID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) OpenVoting(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, tripID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) Lock(ctx context.Context, tripID, requestedBy uuid.UUID, startDate time.Time) (*models.Trip, error) {
	args := m.Called(ctx, tripID, requestedBy, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) Cancel(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, tripID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) Complete(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, tripID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

// MockScheduleService mocks the ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) SubmitAvailability(ctx context.Context, tripID, userID uuid.UUID, sub schedule.Submission) (int, error) {
	args := m.Called(ctx, tripID, userID, sub)
	return args.Int(0), args.Error(1)
}

func (m *MockScheduleService) SubmitDatePicks(ctx context.Context, tripID, userID uuid.UUID, picks []schedule.Pick) error {
	args := m.Called(ctx, tripID, userID, picks)
	return args.Error(0)
}

func (m *MockScheduleService) SubmitVote(ctx context.Context, tripID, userID uuid.UUID, optionKey string) error {
	args := m.Called(ctx, tripID, userID, optionKey)
	return args.Error(0)
}

func (m *MockScheduleService) GetScheduleView(ctx context.Context, tripID uuid.UUID) (*services.ScheduleView, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ScheduleView), args.Error(1)
}

func (m *MockScheduleService) GetUserAvailability(ctx context.Context, tripID, userID uuid.UUID) ([]models.AvailabilityRecord, error) {
	args := m.Called(ctx, tripID, userID)
	return args.Get(0).([]models.AvailabilityRecord), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenService) CleanupExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

// MockJWTService is a mock implementation of the JWT service for handlers
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/oauth"
	"github.com/tripkin/tripkin-api/internal/schedule"
	"github.com/tripkin/tripkin-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// CircleServiceInterface defines the methods used by handlers from CircleService
type CircleServiceInterface interface {
	Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Circle, error)
	GetByID(ctx context.Context, circleID uuid.UUID) (*models.Circle, error)
	GetUserCircles(ctx context.Context, userID uuid.UUID) ([]models.Circle, []string, error)
	Update(ctx context.Context, circleID uuid.UUID, name string) (*models.Circle, error)
	Delete(ctx context.Context, circleID uuid.UUID) error
	IsOwner(ctx context.Context, circleID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error)
	GetMembers(ctx context.Context, circleID uuid.UUID) ([]models.CircleMember, error)
	RemoveMember(ctx context.Context, circleID, userID uuid.UUID) error
	CreateInvite(ctx context.Context, circleID, inviterID, inviteeID uuid.UUID) (*models.CircleInvite, error)
	GetUserPendingInvites(ctx context.Context, userID uuid.UUID) ([]models.CircleInvite, error)
	AcceptInvite(ctx context.Context, inviteID, userID uuid.UUID) error
	DeclineInvite(ctx context.Context, inviteID, userID uuid.UUID) error
	CancelInvite(ctx context.Context, inviteID, circleID uuid.UUID) error
}

// TripServiceInterface defines the methods used by handlers from TripService
type TripServiceInterface interface {
	Create(ctx context.Context, params services.CreateTripParams) (*models.Trip, error)
	GetByID(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
	GetCircleTrips(ctx context.Context, circleID uuid.UUID) ([]models.Trip, error)
	Join(ctx context.Context, tripID, userID uuid.UUID) error
	Leave(ctx context.Context, tripID, userID uuid.UUID) error
	IsActiveMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error)
	OpenScheduling(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error)
	OpenVoting(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error)
	Lock(ctx context.Context, tripID, requestedBy uuid.UUID, startDate time.Time) (*models.Trip, error)
	Cancel(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error)
	Complete(ctx context.Context, tripID, requestedBy uuid.UUID) (*models.Trip, error)
}

// ScheduleServiceInterface defines the methods used by handlers from ScheduleService
type ScheduleServiceInterface interface {
	SubmitAvailability(ctx context.Context, tripID, userID uuid.UUID, sub schedule.Submission) (int, error)
	SubmitDatePicks(ctx context.Context, tripID, userID uuid.UUID, picks []schedule.Pick) error
	SubmitVote(ctx context.Context, tripID, userID uuid.UUID, optionKey string) error
	GetScheduleView(ctx context.Context, tripID uuid.UUID) (*services.ScheduleView, error)
	GetUserAvailability(ctx context.Context, tripID, userID uuid.UUID) ([]models.AvailabilityRecord, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

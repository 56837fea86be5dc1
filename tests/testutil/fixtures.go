package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tripkin/tripkin-api/internal/database"
	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/oauth"
	"github.com/tripkin/tripkin-api/internal/schedule"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Name:       fmt.Sprintf("Test User %d", f.counter),
		Provider:   "github",
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, avatar_url, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, name, avatar_url, provider, provider_id, created_at, updated_at
	`, user.Email, user.Name, user.AvatarURL, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// WithAvatar sets the user's avatar URL
func WithAvatar(url string) UserOption {
	return func(u *models.User) {
		u.AvatarURL = &url
	}
}

// CreateCircle creates a test circle with the given owner
func (f *Fixtures) CreateCircle(t *testing.T, owner *models.User, opts ...CircleOption) *models.Circle {
	t.Helper()
	f.counter++

	circle := &models.Circle{
		Name:    fmt.Sprintf("Test Circle %d", f.counter),
		OwnerID: owner.ID,
	}

	for _, opt := range opts {
		opt(circle)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO circles (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, circle.Name, circle.OwnerID).Scan(&circle.ID, &circle.Name, &circle.OwnerID, &circle.CreatedAt, &circle.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create circle: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO circle_members (circle_id, user_id, role)
		VALUES ($1, $2, $3)
	`, circle.ID, owner.ID, models.RoleOwner)
	if err != nil {
		t.Fatalf("failed to add owner as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return circle
}

// CircleOption configures a test circle
type CircleOption func(*models.Circle)

// WithCircleName sets the circle's name
func WithCircleName(name string) CircleOption {
	return func(c *models.Circle) {
		c.Name = name
	}
}

// AddCircleMember adds a member to a circle
func (f *Fixtures) AddCircleMember(t *testing.T, circle *models.Circle, user *models.User) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO circle_members (circle_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (circle_id, user_id) DO NOTHING
	`, circle.ID, user.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("failed to add circle member: %v", err)
	}
}

// CreateTrip creates a test trip led by the given user
func (f *Fixtures) CreateTrip(t *testing.T, circle *models.Circle, leader *models.User, opts ...TripOption) *models.Trip {
	t.Helper()
	f.counter++

	trip := &models.Trip{
		CircleID:            circle.ID,
		CreatedBy:           leader.ID,
		Name:                fmt.Sprintf("Test Trip %d", f.counter),
		TripType:            models.TripTypeCollaborative,
		SchedulingMode:      models.SchedulingModeLegacy,
		Status:              schedule.StatusProposed,
		PlanningWindowStart: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		PlanningWindowEnd:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		TripLengthDays:      3,
	}

	for _, opt := range opts {
		opt(trip)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO trips (circle_id, created_by, name, destination, trip_type, scheduling_mode,
			status, planning_window_start, planning_window_end, trip_length_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, trip.CircleID, trip.CreatedBy, trip.Name, trip.Destination, trip.TripType,
		trip.SchedulingMode, trip.Status, trip.PlanningWindowStart, trip.PlanningWindowEnd,
		trip.TripLengthDays).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO trip_members (trip_id, user_id) VALUES ($1, $2)
	`, trip.ID, leader.ID)
	if err != nil {
		t.Fatalf("failed to add trip leader as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return trip
}

// TripOption configures a test trip
type TripOption func(*models.Trip)

// WithTripStatus sets the trip lifecycle status
func WithTripStatus(status schedule.Status) TripOption {
	return func(tr *models.Trip) {
		tr.Status = status
	}
}

// WithSchedulingMode sets the trip scheduling mode
func WithSchedulingMode(mode string) TripOption {
	return func(tr *models.Trip) {
		tr.SchedulingMode = mode
	}
}

// WithPlanningWindow sets the trip planning window and length
func WithPlanningWindow(start, end time.Time, lengthDays int) TripOption {
	return func(tr *models.Trip) {
		tr.PlanningWindowStart = start
		tr.PlanningWindowEnd = end
		tr.TripLengthDays = lengthDays
	}
}

// AddTripMember adds an active member to a trip roster
func (f *Fixtures) AddTripMember(t *testing.T, trip *models.Trip, user *models.User) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO trip_members (trip_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (trip_id, user_id) DO UPDATE SET left_at = NULL
	`, trip.ID, user.ID)
	if err != nil {
		t.Fatalf("failed to add trip member: %v", err)
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripkin/tripkin-api/internal/database"
	"github.com/tripkin/tripkin-api/internal/models"
)

var (
	ErrCannotRemoveOwner = errors.New("cannot remove circle owner")
	ErrMemberNotFound    = errors.New("member not found")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrAlreadyMember     = errors.New("user is already a circle member")
)

type CircleService struct {
	db *database.DB
}

func NewCircleService(db *database.DB) *CircleService {
	return &CircleService{db: db}
}

func (s *CircleService) Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Circle, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var circle models.Circle
	err = tx.QueryRow(ctx, `
		INSERT INTO circles (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, name, ownerID).Scan(&circle.ID, &circle.Name, &circle.OwnerID, &circle.CreatedAt, &circle.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create circle: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO circle_members (circle_id, user_id, role)
		VALUES ($1, $2, $3)
	`, circle.ID, ownerID, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &circle, nil
}

func (s *CircleService) GetByID(ctx context.Context, circleID uuid.UUID) (*models.Circle, error) {
	var circle models.Circle
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM circles WHERE id = $1
	`, circleID).Scan(&circle.ID, &circle.Name, &circle.OwnerID, &circle.CreatedAt, &circle.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &circle, nil
}

func (s *CircleService) GetUserCircles(ctx context.Context, userID uuid.UUID) ([]models.Circle, []string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT c.id, c.name, c.owner_id, c.created_at, c.updated_at, cm.role
		FROM circles c
		JOIN circle_members cm ON c.id = cm.circle_id
		WHERE cm.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var circles []models.Circle
	var roles []string
	for rows.Next() {
		var c models.Circle
		var role string
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt, &role); err != nil {
			return nil, nil, err
		}
		circles = append(circles, c)
		roles = append(roles, role)
	}
	return circles, roles, nil
}

func (s *CircleService) Update(ctx context.Context, circleID uuid.UUID, name string) (*models.Circle, error) {
	var circle models.Circle
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE circles SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, owner_id, created_at, updated_at
	`, name, circleID).Scan(&circle.ID, &circle.Name, &circle.OwnerID, &circle.CreatedAt, &circle.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &circle, nil
}

func (s *CircleService) Delete(ctx context.Context, circleID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM circles WHERE id = $1`, circleID)
	return err
}

func (s *CircleService) IsOwner(ctx context.Context, circleID, userID uuid.UUID) (bool, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM circles WHERE id = $1`, circleID).Scan(&ownerID)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}

func (s *CircleService) IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM circle_members WHERE circle_id = $1 AND user_id = $2)
	`, circleID, userID).Scan(&exists)
	return exists, err
}

func (s *CircleService) GetMembers(ctx context.Context, circleID uuid.UUID) ([]models.CircleMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT cm.id, cm.circle_id, cm.user_id, cm.role, cm.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM circle_members cm
		JOIN users u ON cm.user_id = u.id
		WHERE cm.circle_id = $1
		ORDER BY cm.created_at
	`, circleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.CircleMember
	for rows.Next() {
		var member models.CircleMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.CircleID, &member.UserID, &member.Role, &member.CreatedAt,
			&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, nil
}

func (s *CircleService) RemoveMember(ctx context.Context, circleID, userID uuid.UUID) error {
	var role string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT role FROM circle_members WHERE circle_id = $1 AND user_id = $2
	`, circleID, userID).Scan(&role)
	if err != nil {
		return ErrMemberNotFound
	}

	if role == models.RoleOwner {
		return ErrCannotRemoveOwner
	}

	_, err = s.db.Pool.Exec(ctx, `
		DELETE FROM circle_members WHERE circle_id = $1 AND user_id = $2
	`, circleID, userID)
	return err
}

func (s *CircleService) CreateInvite(ctx context.Context, circleID, inviterID, inviteeID uuid.UUID) (*models.CircleInvite, error) {
	isMember, err := s.IsMember(ctx, circleID, inviteeID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	var invite models.CircleInvite
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO circle_invites (circle_id, inviter_id, invitee_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (circle_id, invitee_id) DO UPDATE SET
			inviter_id = EXCLUDED.inviter_id,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, circle_id, inviter_id, invitee_id, status, created_at, updated_at
	`, circleID, inviterID, inviteeID, models.InviteStatusPending).Scan(
		&invite.ID, &invite.CircleID, &invite.InviterID, &invite.InviteeID,
		&invite.Status, &invite.CreatedAt, &invite.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return &invite, nil
}

func (s *CircleService) GetUserPendingInvites(ctx context.Context, userID uuid.UUID) ([]models.CircleInvite, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT ci.id, ci.circle_id, ci.inviter_id, ci.invitee_id, ci.status, ci.created_at, ci.updated_at,
		       c.id, c.name, c.owner_id, c.created_at, c.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM circle_invites ci
		JOIN circles c ON ci.circle_id = c.id
		JOIN users u ON ci.inviter_id = u.id
		WHERE ci.invitee_id = $1 AND ci.status = $2
		ORDER BY ci.created_at DESC
	`, userID, models.InviteStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.CircleInvite
	for rows.Next() {
		var invite models.CircleInvite
		var circle models.Circle
		var inviter models.User
		if err := rows.Scan(
			&invite.ID, &invite.CircleID, &invite.InviterID, &invite.InviteeID,
			&invite.Status, &invite.CreatedAt, &invite.UpdatedAt,
			&circle.ID, &circle.Name, &circle.OwnerID, &circle.CreatedAt, &circle.UpdatedAt,
			&inviter.ID, &inviter.Email, &inviter.Name, &inviter.AvatarURL,
			&inviter.Provider, &inviter.CreatedAt, &inviter.UpdatedAt,
		); err != nil {
			return nil, err
		}
		invite.Circle = &circle
		invite.Inviter = &inviter
		invites = append(invites, invite)
	}
	return invites, nil
}

func (s *CircleService) AcceptInvite(ctx context.Context, inviteID, userID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var invite models.CircleInvite
	err = tx.QueryRow(ctx, `
		SELECT id, circle_id, invitee_id, status FROM circle_invites WHERE id = $1
	`, inviteID).Scan(&invite.ID, &invite.CircleID, &invite.InviteeID, &invite.Status)
	if err != nil {
		return ErrInviteNotFound
	}

	if invite.InviteeID != userID || invite.Status != models.InviteStatusPending {
		return ErrInviteNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE circle_invites SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.InviteStatusAccepted, inviteID)
	if err != nil {
		return fmt.Errorf("failed to update invite: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO circle_members (circle_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (circle_id, user_id) DO NOTHING
	`, invite.CircleID, userID, models.RoleMember)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *CircleService) DeclineInvite(ctx context.Context, inviteID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE circle_invites SET status = $1, updated_at = NOW()
		WHERE id = $2 AND invitee_id = $3 AND status = $4
	`, models.InviteStatusDeclined, inviteID, userID, models.InviteStatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInviteNotFound
	}
	return nil
}

func (s *CircleService) CancelInvite(ctx context.Context, inviteID, circleID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM circle_invites WHERE id = $1 AND circle_id = $2 AND status = $3
	`, inviteID, circleID, models.InviteStatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInviteNotFound
	}
	return nil
}

package dto

import "github.com/google/uuid"

type CreateCircleRequest struct {
	Name string `json:"name"`
}

type UpdateCircleRequest struct {
	Name string `json:"name"`
}

type InviteMemberRequest struct {
	Email string `json:"email"`
}

type CircleResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"owner_id"`
	Role    string    `json:"role"`
}

type CircleMemberResponse struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"user_id"`
	Role   string       `json:"role"`
	User   UserResponse `json:"user"`
}

type CircleInviteResponse struct {
	ID        uuid.UUID       `json:"id"`
	CircleID  uuid.UUID       `json:"circle_id"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
	Circle    *CircleResponse `json:"circle,omitempty"`
	Inviter   *UserResponse   `json:"inviter,omitempty"`
	Invitee   *UserResponse   `json:"invitee,omitempty"`
}

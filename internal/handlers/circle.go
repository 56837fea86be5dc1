package handlers

import (
	"context"
	"errors"

	"github.com/tripkin/tripkin-api/internal/middleware"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/tripkin/tripkin-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type CircleHandler struct {
	circleService CircleServiceInterface
	userService   UserServiceInterface
}

func NewCircleHandler(circleService CircleServiceInterface, userService UserServiceInterface) *CircleHandler {
	return &CircleHandler{
		circleService: circleService,
		userService:   userService,
	}
}

func (h *CircleHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateCircleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	circle, err := h.circleService.Create(context.Background(), req.Name, userID)
	if err != nil {
		c.InternalServerError("failed to create circle")
		return
	}

	_ = c.JSON(201, dto.CircleResponse{
		ID:      circle.ID,
		Name:    circle.Name,
		OwnerID: circle.OwnerID,
		Role:    "owner",
	})
}

func (h *CircleHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circles, roles, err := h.circleService.GetUserCircles(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get circles")
		return
	}

	response := make([]dto.CircleResponse, len(circles))
	for i, circle := range circles {
		response[i] = dto.CircleResponse{
			ID:      circle.ID,
			Name:    circle.Name,
			OwnerID: circle.OwnerID,
			Role:    roles[i],
		}
	}

	_ = c.JSON(200, response)
}

func (h *CircleHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isMember, err := h.circleService.IsMember(context.Background(), circleID, userID)
	if err != nil || !isMember {
		c.NotFound("circle not found")
		return
	}

	circle, err := h.circleService.GetByID(context.Background(), circleID)
	if err != nil {
		c.NotFound("circle not found")
		return
	}

	role := "member"
	if circle.OwnerID == userID {
		role = "owner"
	}

	_ = c.JSON(200, dto.CircleResponse{
		ID:      circle.ID,
		Name:    circle.Name,
		OwnerID: circle.OwnerID,
		Role:    role,
	})
}

func (h *CircleHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isOwner, err := h.circleService.IsOwner(context.Background(), circleID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only owner can update circle")
		return
	}

	var req dto.UpdateCircleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	circle, err := h.circleService.Update(context.Background(), circleID, req.Name)
	if err != nil {
		c.InternalServerError("failed to update circle")
		return
	}

	_ = c.JSON(200, dto.CircleResponse{
		ID:      circle.ID,
		Name:    circle.Name,
		OwnerID: circle.OwnerID,
		Role:    "owner",
	})
}

func (h *CircleHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isOwner, err := h.circleService.IsOwner(context.Background(), circleID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only owner can delete circle")
		return
	}

	if err := h.circleService.Delete(context.Background(), circleID); err != nil {
		c.InternalServerError("failed to delete circle")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "circle deleted"})
}

func (h *CircleHandler) GetMembers(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isMember, err := h.circleService.IsMember(context.Background(), circleID, userID)
	if err != nil || !isMember {
		c.NotFound("circle not found")
		return
	}

	members, err := h.circleService.GetMembers(context.Background(), circleID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.CircleMemberResponse, len(members))
	for i, m := range members {
		response[i] = dto.CircleMemberResponse{
			ID:     m.ID,
			UserID: m.UserID,
			Role:   m.Role,
			User: dto.UserResponse{
				ID:        m.User.ID,
				Email:     m.User.Email,
				Name:      m.User.Name,
				AvatarURL: m.User.AvatarURL,
				Provider:  m.User.Provider,
			},
		}
	}

	_ = c.JSON(200, response)
}

func (h *CircleHandler) InviteMember(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	isOwner, err := h.circleService.IsOwner(context.Background(), circleID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only owner can invite members")
		return
	}

	var req dto.InviteMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	invitee, err := h.userService.GetByEmail(context.Background(), req.Email)
	if err != nil {
		c.NotFound("user with this email not found")
		return
	}

	invite, err := h.circleService.CreateInvite(context.Background(), circleID, userID, invitee.ID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyMember) {
			c.BadRequest("user is already a member")
			return
		}
		c.InternalServerError("failed to create invite")
		return
	}

	_ = c.JSON(201, dto.CircleInviteResponse{
		ID:        invite.ID,
		CircleID:  invite.CircleID,
		Status:    invite.Status,
		CreatedAt: invite.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *CircleHandler) ListMyInvites(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invites, err := h.circleService.GetUserPendingInvites(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get invites")
		return
	}

	response := make([]dto.CircleInviteResponse, len(invites))
	for i, invite := range invites {
		resp := dto.CircleInviteResponse{
			ID:        invite.ID,
			CircleID:  invite.CircleID,
			Status:    invite.Status,
			CreatedAt: invite.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if invite.Circle != nil {
			resp.Circle = &dto.CircleResponse{
				ID:      invite.Circle.ID,
				Name:    invite.Circle.Name,
				OwnerID: invite.Circle.OwnerID,
			}
		}
		if invite.Inviter != nil {
			resp.Inviter = &dto.UserResponse{
				ID:        invite.Inviter.ID,
				Email:     invite.Inviter.Email,
				Name:      invite.Inviter.Name,
				AvatarURL: invite.Inviter.AvatarURL,
				Provider:  invite.Inviter.Provider,
			}
		}
		response[i] = resp
	}

	_ = c.JSON(200, response)
}

func (h *CircleHandler) AcceptInvite(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inviteID, err := uuid.Parse(c.Param("inviteId"))
	if err != nil {
		c.BadRequest("invalid invite id")
		return
	}

	if err := h.circleService.AcceptInvite(context.Background(), inviteID, userID); err != nil {
		if errors.Is(err, services.ErrInviteNotFound) {
			c.NotFound("invite not found or already processed")
			return
		}
		c.InternalServerError("failed to accept invite")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "invite accepted"})
}

func (h *CircleHandler) DeclineInvite(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inviteID, err := uuid.Parse(c.Param("inviteId"))
	if err != nil {
		c.BadRequest("invalid invite id")
		return
	}

	if err := h.circleService.DeclineInvite(context.Background(), inviteID, userID); err != nil {
		if errors.Is(err, services.ErrInviteNotFound) {
			c.NotFound("invite not found or already processed")
			return
		}
		c.InternalServerError("failed to decline invite")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "invite declined"})
}

func (h *CircleHandler) CancelInvite(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	inviteID, err := uuid.Parse(c.Param("inviteId"))
	if err != nil {
		c.BadRequest("invalid invite id")
		return
	}

	isOwner, err := h.circleService.IsOwner(context.Background(), circleID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only owner can cancel invites")
		return
	}

	if err := h.circleService.CancelInvite(context.Background(), inviteID, circleID); err != nil {
		if errors.Is(err, services.ErrInviteNotFound) {
			c.NotFound("invite not found or already processed")
			return
		}
		c.InternalServerError("failed to cancel invite")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "invite canceled"})
}

func (h *CircleHandler) RemoveMember(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	isOwner, err := h.circleService.IsOwner(context.Background(), circleID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only owner can remove members")
		return
	}

	if err := h.circleService.RemoveMember(context.Background(), circleID, memberID); err != nil {
		if errors.Is(err, services.ErrCannotRemoveOwner) {
			c.BadRequest("cannot remove circle owner")
			return
		}
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("member not found")
			return
		}
		c.InternalServerError("failed to remove member")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}

func (h *CircleHandler) LeaveCircle(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	circleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid circle id")
		return
	}

	if err := h.circleService.RemoveMember(context.Background(), circleID, userID); err != nil {
		if errors.Is(err, services.ErrCannotRemoveOwner) {
			c.BadRequest("owner cannot leave circle, transfer ownership or delete it")
			return
		}
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("circle not found or not a member")
			return
		}
		c.InternalServerError("failed to leave circle")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left circle"})
}

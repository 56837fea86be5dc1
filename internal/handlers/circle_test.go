package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tripkin/tripkin-api/internal/middleware"
	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/tripkin/tripkin-api/pkg/dto"
	"github.com/tripkin/tripkin-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCircleHandlerTest(t *testing.T) (*testutil.MockCircleService, *testutil.MockUserService, http.Handler, *services.JWTService) {
	t.Helper()
	mockCircleService := new(testutil.MockCircleService)
	mockUserService := new(testutil.MockUserService)
	handler := NewCircleHandler(mockCircleService, mockUserService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/circles", handler.Create)
	app.Get("/circles", handler.List)
	app.Get("/circles/:id", handler.Get)
	app.Get("/circles/:id/members", handler.GetMembers)
	app.Post("/circles/:id/invites", handler.InviteMember)
	app.Delete("/circles/:id/members/:memberId", handler.RemoveMember)
	app.Post("/invites/:inviteId/accept", handler.AcceptInvite)
	app.Post("/invites/:inviteId/decline", handler.DeclineInvite)

	return mockCircleService, mockUserService, app, jwtSvc
}

func authedRequest(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, method, path string, body interface{}) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCircleHandler_Create_Success(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	circle := &models.Circle{
		ID:      uuid.New(),
		Name:    "Ski Crew",
		OwnerID: userID,
	}

	mockCircleService.On("Create", mock.Anything, "Ski Crew", userID).Return(circle, nil)

	req := authedRequest(t, jwtSvc, userID, http.MethodPost, "/circles", dto.CreateCircleRequest{Name: "Ski Crew"})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.CircleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, circle.ID, response.ID)
	assert.Equal(t, "Ski Crew", response.Name)
	assert.Equal(t, "owner", response.Role)

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_Create_MissingName(t *testing.T) {
	_, _, app, jwtSvc := setupCircleHandlerTest(t)

	req := authedRequest(t, jwtSvc, uuid.New(), http.MethodPost, "/circles", dto.CreateCircleRequest{Name: ""})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestCircleHandler_List_Success(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	circles := []models.Circle{
		{ID: uuid.New(), Name: "Ski Crew", OwnerID: userID},
		{ID: uuid.New(), Name: "Beach Gang", OwnerID: uuid.New()},
	}
	roles := []string{"owner", "member"}

	mockCircleService.On("GetUserCircles", mock.Anything, userID).Return(circles, roles, nil)

	req := authedRequest(t, jwtSvc, userID, http.MethodGet, "/circles", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.CircleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "owner", response[0].Role)
	assert.Equal(t, "member", response[1].Role)

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_Get_NotMember(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	circleID := uuid.New()

	mockCircleService.On("IsMember", mock.Anything, circleID, userID).Return(false, nil)

	req := authedRequest(t, jwtSvc, userID, http.MethodGet, "/circles/"+circleID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "circle not found")

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_GetMembers_Success(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	circleID := uuid.New()
	members := []models.CircleMember{
		{
			ID:     uuid.New(),
			UserID: userID,
			Role:   models.RoleOwner,
			User:   &models.User{ID: userID, Email: "owner@example.com", Name: "Owner", Provider: "github"},
		},
	}

	mockCircleService.On("IsMember", mock.Anything, circleID, userID).Return(true, nil)
	mockCircleService.On("GetMembers", mock.Anything, circleID).Return(members, nil)

	req := authedRequest(t, jwtSvc, userID, http.MethodGet, "/circles/"+circleID.String()+"/members", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.CircleMemberResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "owner", response[0].Role)
	assert.Equal(t, "Owner", response[0].User.Name)

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_InviteMember_Success(t *testing.T) {
	mockCircleService, mockUserService, app, jwtSvc := setupCircleHandlerTest(t)

	ownerID := uuid.New()
	circleID := uuid.New()
	invitee := &models.User{ID: uuid.New(), Email: "friend@example.com", Name: "Friend", Provider: "google"}
	invite := &models.CircleInvite{
		ID:        uuid.New(),
		CircleID:  circleID,
		InviterID: ownerID,
		InviteeID: invitee.ID,
		Status:    models.InviteStatusPending,
		CreatedAt: time.Now(),
	}

	mockCircleService.On("IsOwner", mock.Anything, circleID, ownerID).Return(true, nil)
	mockUserService.On("GetByEmail", mock.Anything, "friend@example.com").Return(invitee, nil)
	mockCircleService.On("CreateInvite", mock.Anything, circleID, ownerID, invitee.ID).Return(invite, nil)

	req := authedRequest(t, jwtSvc, ownerID, http.MethodPost, "/circles/"+circleID.String()+"/invites",
		dto.InviteMemberRequest{Email: "friend@example.com"})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.CircleInviteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, invite.ID, response.ID)
	assert.Equal(t, models.InviteStatusPending, response.Status)

	mockCircleService.AssertExpectations(t)
	mockUserService.AssertExpectations(t)
}

func TestCircleHandler_InviteMember_NotOwner(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	circleID := uuid.New()

	mockCircleService.On("IsOwner", mock.Anything, circleID, userID).Return(false, nil)

	req := authedRequest(t, jwtSvc, userID, http.MethodPost, "/circles/"+circleID.String()+"/invites",
		dto.InviteMemberRequest{Email: "friend@example.com"})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "only owner can invite members")

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_InviteMember_AlreadyMember(t *testing.T) {
	mockCircleService, mockUserService, app, jwtSvc := setupCircleHandlerTest(t)

	ownerID := uuid.New()
	circleID := uuid.New()
	invitee := &models.User{ID: uuid.New(), Email: "friend@example.com", Name: "Friend", Provider: "google"}

	mockCircleService.On("IsOwner", mock.Anything, circleID, ownerID).Return(true, nil)
	mockUserService.On("GetByEmail", mock.Anything, "friend@example.com").Return(invitee, nil)
	mockCircleService.On("CreateInvite", mock.Anything, circleID, ownerID, invitee.ID).
		Return(nil, services.ErrAlreadyMember)

	req := authedRequest(t, jwtSvc, ownerID, http.MethodPost, "/circles/"+circleID.String()+"/invites",
		dto.InviteMemberRequest{Email: "friend@example.com"})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already a member")

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_AcceptInvite_Success(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	inviteID := uuid.New()

	mockCircleService.On("AcceptInvite", mock.Anything, inviteID, userID).Return(nil)

	req := authedRequest(t, jwtSvc, userID, http.MethodPost, "/invites/"+inviteID.String()+"/accept", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invite accepted")

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_AcceptInvite_NotFound(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	userID := uuid.New()
	inviteID := uuid.New()

	mockCircleService.On("AcceptInvite", mock.Anything, inviteID, userID).Return(services.ErrInviteNotFound)

	req := authedRequest(t, jwtSvc, userID, http.MethodPost, "/invites/"+inviteID.String()+"/accept", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "invite not found")

	mockCircleService.AssertExpectations(t)
}

func TestCircleHandler_RemoveMember_Owner(t *testing.T) {
	mockCircleService, _, app, jwtSvc := setupCircleHandlerTest(t)

	ownerID := uuid.New()
	circleID := uuid.New()

	mockCircleService.On("IsOwner", mock.Anything, circleID, ownerID).Return(true, nil)
	mockCircleService.On("RemoveMember", mock.Anything, circleID, ownerID).Return(services.ErrCannotRemoveOwner)

	req := authedRequest(t, jwtSvc, ownerID, http.MethodDelete,
		"/circles/"+circleID.String()+"/members/"+ownerID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot remove circle owner")

	mockCircleService.AssertExpectations(t)
}

package integration

import (
	"context"
	"testing"

	"github.com/tripkin/tripkin-api/internal/models"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/tripkin/tripkin-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleService_Integration_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCircleService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)

	circle, err := svc.Create(ctx, "Ski Crew", owner.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, circle.ID)
	assert.Equal(t, "Ski Crew", circle.Name)
	assert.Equal(t, owner.ID, circle.OwnerID)

	// Creating a circle also enrolls the owner as a member
	isMember, err := svc.IsMember(ctx, circle.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestCircleService_Integration_InviteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCircleService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	invitee := fixtures.CreateUser(t)
	circle := fixtures.CreateCircle(t, owner)

	invite, err := svc.CreateInvite(ctx, circle.ID, owner.ID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, invite.Status)

	pending, err := svc.GetUserPendingInvites(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, circle.ID, pending[0].CircleID)
	require.NotNil(t, pending[0].Circle)
	assert.Equal(t, circle.Name, pending[0].Circle.Name)

	err = svc.AcceptInvite(ctx, invite.ID, invitee.ID)
	require.NoError(t, err)

	isMember, err := svc.IsMember(ctx, circle.ID, invitee.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	// Accepting twice is a no-op failure, the invite is gone
	err = svc.AcceptInvite(ctx, invite.ID, invitee.ID)
	assert.ErrorIs(t, err, services.ErrInviteNotFound)
}

func TestCircleService_Integration_InviteExistingMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCircleService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	circle := fixtures.CreateCircle(t, owner)
	fixtures.AddCircleMember(t, circle, member)

	_, err := svc.CreateInvite(ctx, circle.ID, owner.ID, member.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyMember)
}

func TestCircleService_Integration_RemoveMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCircleService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	circle := fixtures.CreateCircle(t, owner)
	fixtures.AddCircleMember(t, circle, member)

	err := svc.RemoveMember(ctx, circle.ID, member.ID)
	require.NoError(t, err)

	isMember, err := svc.IsMember(ctx, circle.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	// Owner cannot be removed
	err = svc.RemoveMember(ctx, circle.ID, owner.ID)
	assert.ErrorIs(t, err, services.ErrCannotRemoveOwner)
}

func TestCircleService_Integration_GetUserCircles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewCircleService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)

	owned := fixtures.CreateCircle(t, owner, testutil.WithCircleName("Owned"))
	joined := fixtures.CreateCircle(t, member, testutil.WithCircleName("Joined"))
	fixtures.AddCircleMember(t, joined, owner)

	circles, roles, err := svc.GetUserCircles(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, circles, 2)
	require.Len(t, roles, 2)

	byName := map[string]string{}
	for i, c := range circles {
		byName[c.Name] = roles[i]
	}
	assert.Equal(t, models.RoleOwner, byName[owned.Name])
	assert.Equal(t, models.RoleMember, byName[joined.Name])
}

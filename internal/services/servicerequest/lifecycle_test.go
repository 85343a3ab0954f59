package servicerequest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignedRequest(t *testing.T) (*ServiceRequest, uuid.UUID) {
	t.Helper()
	profileID := uuid.New()
	return &ServiceRequest{
		ID:               uuid.New(),
		Status:           StatusPending,
		AssignedEmployee: &profileID,
	}, profileID
}

func TestAccept(t *testing.T) {
	sr, profileID := assignedRequest(t)
	now := time.Now()

	require.NoError(t, sr.Accept(profileID, now))

	assert.True(t, sr.EmployeeAccepted)
	require.NotNil(t, sr.EmployeeAcceptedAt)
	assert.Equal(t, now, *sr.EmployeeAcceptedAt)
	assert.Equal(t, StatusInProgress, sr.Status)
}

func TestAccept_NotAssignee(t *testing.T) {
	sr, _ := assignedRequest(t)

	err := sr.Accept(uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrNotAssignee)
	assert.False(t, sr.EmployeeAccepted)
	assert.Equal(t, StatusPending, sr.Status)
}

func TestAccept_Unassigned(t *testing.T) {
	sr := &ServiceRequest{Status: StatusPending}

	err := sr.Accept(uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrNotAssignee)
}

func TestAccept_AlreadyAccepted(t *testing.T) {
	sr, profileID := assignedRequest(t)
	require.NoError(t, sr.Accept(profileID, time.Now()))

	err := sr.Accept(profileID, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
}

func TestComplete(t *testing.T) {
	sr, profileID := assignedRequest(t)
	require.NoError(t, sr.Accept(profileID, time.Now()))

	now := time.Now()
	require.NoError(t, sr.Complete(profileID, "replaced the fixture", now))

	assert.Equal(t, StatusCompleted, sr.Status)
	require.NotNil(t, sr.CompletedAt)
	assert.Equal(t, now, *sr.CompletedAt)
	assert.Equal(t, "replaced the fixture", sr.CompletionNotes)
}

func TestComplete_BeforeAccept(t *testing.T) {
	sr, profileID := assignedRequest(t)

	err := sr.Complete(profileID, "", time.Now())
	assert.ErrorIs(t, err, ErrNotYetAccepted)
	assert.Equal(t, StatusPending, sr.Status)
	assert.Nil(t, sr.CompletedAt)
}

func TestComplete_NotAssignee(t *testing.T) {
	sr, profileID := assignedRequest(t)
	require.NoError(t, sr.Accept(profileID, time.Now()))

	err := sr.Complete(uuid.New(), "", time.Now())
	assert.ErrorIs(t, err, ErrNotAssignee)
}

func TestComplete_EmptyNotesKeepExisting(t *testing.T) {
	sr, profileID := assignedRequest(t)
	sr.CompletionNotes = "earlier note"
	require.NoError(t, sr.Accept(profileID, time.Now()))

	require.NoError(t, sr.Complete(profileID, "", time.Now()))
	assert.Equal(t, "earlier note", sr.CompletionNotes)
}

func TestSetRemarks(t *testing.T) {
	sr, profileID := assignedRequest(t)

	require.NoError(t, sr.SetRemarks(profileID, "waiting on parts"))
	assert.Equal(t, "waiting on parts", sr.EmployeeRemarks)

	// overwrite is unconditional
	require.NoError(t, sr.SetRemarks(profileID, ""))
	assert.Equal(t, "", sr.EmployeeRemarks)
}

func TestSetRemarks_NotAssignee(t *testing.T) {
	sr, _ := assignedRequest(t)

	err := sr.SetRemarks(uuid.New(), "nope")
	assert.ErrorIs(t, err, ErrNotAssignee)
}

func TestRate(t *testing.T) {
	sr, _ := assignedRequest(t)

	require.NoError(t, sr.Rate(4, "quick and tidy"))
	require.NotNil(t, sr.CustomerRating)
	assert.Equal(t, 4, *sr.CustomerRating)
	assert.Equal(t, "quick and tidy", sr.CustomerFeedback)
}

func TestRate_Bounds(t *testing.T) {
	sr, _ := assignedRequest(t)

	assert.ErrorIs(t, sr.Rate(0, ""), ErrInvalidRating)
	assert.ErrorIs(t, sr.Rate(6, ""), ErrInvalidRating)
	assert.ErrorIs(t, sr.Rate(-1, ""), ErrInvalidRating)
	assert.NoError(t, sr.Rate(1, ""))
	assert.NoError(t, sr.Rate(5, ""))
}

func TestRate_HasNoStatusPrecondition(t *testing.T) {
	sr, _ := assignedRequest(t)
	sr.Status = StatusPending

	assert.NoError(t, sr.Rate(3, "rated before completion"))
}

func TestAssignTo_ResetsStatusKeepsAcceptanceFlags(t *testing.T) {
	sr, profileID := assignedRequest(t)
	require.NoError(t, sr.Accept(profileID, time.Now()))
	require.Equal(t, StatusInProgress, sr.Status)

	next := uuid.New()
	sr.AssignTo(next)

	assert.Equal(t, StatusPending, sr.Status)
	require.NotNil(t, sr.AssignedEmployee)
	assert.Equal(t, next, *sr.AssignedEmployee)
	// acceptance flags survive reassignment
	assert.True(t, sr.EmployeeAccepted)
	assert.NotNil(t, sr.EmployeeAcceptedAt)
}

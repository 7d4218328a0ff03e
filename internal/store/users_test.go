package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/domain"
)

func newTestUsers(t *testing.T) *Users {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewUsers(db)
}

func TestUsersInsertAndFind(t *testing.T) {
	users := newTestUsers(t)

	err := users.Insert(&domain.Account{
		Username:      "maya",
		PasswordHash:  "hash",
		Email:         "maya@example.com",
		FirstTimeUser: true,
	})
	require.NoError(t, err)

	acct, err := users.FindByUsername("maya")
	require.NoError(t, err)
	assert.Equal(t, "maya", acct.Username)
	assert.Equal(t, "hash", acct.PasswordHash)
	assert.True(t, acct.FirstTimeUser)
}

func TestUsersInsertDuplicate(t *testing.T) {
	users := newTestUsers(t)

	require.NoError(t, users.Insert(&domain.Account{Username: "maya"}))
	err := users.Insert(&domain.Account{Username: "maya"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUsersFindUnknown(t *testing.T) {
	users := newTestUsers(t)

	_, err := users.FindByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUsersMarkReturning(t *testing.T) {
	users := newTestUsers(t)
	require.NoError(t, users.Insert(&domain.Account{Username: "maya", FirstTimeUser: true}))

	require.NoError(t, users.MarkReturning("maya"))

	acct, err := users.FindByUsername("maya")
	require.NoError(t, err)
	assert.False(t, acct.FirstTimeUser)

	assert.ErrorIs(t, users.MarkReturning("ghost"), ErrUserNotFound)
}

func TestUsersAppendAssessment(t *testing.T) {
	users := newTestUsers(t)
	require.NoError(t, users.Insert(&domain.Account{Username: "maya", FirstTimeUser: true}))

	first := Assessment{
		Date:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Answers: []string{"0", "1", "2"},
		Reply:   "you are doing better than you think",
	}
	require.NoError(t, users.AppendAssessment("maya", first))
	require.NoError(t, users.AppendAssessment("maya", Assessment{Reply: "keep going"}))

	history, err := users.Assessments("maya")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.Answers, history[0].Answers)
	assert.Equal(t, "keep going", history[1].Reply)

	// Completing an assessment also clears the first-time flag.
	acct, err := users.FindByUsername("maya")
	require.NoError(t, err)
	assert.False(t, acct.FirstTimeUser)

	assert.ErrorIs(t, users.AppendAssessment("ghost", first), ErrUserNotFound)
}

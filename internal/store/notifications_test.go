package store

import (
	"context"
	"testing"
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNotifications_NewestFirst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	st := New(clock)
	ctx := context.Background()

	first, err := st.CreateNotification(ctx, 1, "first", "payments")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := st.CreateNotification(ctx, 1, "second", "rewards")
	require.NoError(t, err)

	notifications, err := st.GetNotifications(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, second.ID, notifications[0].ID)
	assert.Equal(t, first.ID, notifications[1].ID)
}

func TestGetNotifications_EqualTimestampsBreakTiesByID(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	// Fake clock does not advance, so both share a timestamp.
	first, err := st.CreateNotification(ctx, 1, "first", "")
	require.NoError(t, err)
	second, err := st.CreateNotification(ctx, 1, "second", "")
	require.NoError(t, err)
	require.Equal(t, first.Timestamp, second.Timestamp)

	notifications, err := st.GetNotifications(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, second.ID, notifications[0].ID)
}

func TestGetNotifications_ScopedToUser(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	_, err := st.CreateNotification(ctx, 1, "mine", "")
	require.NoError(t, err)
	_, err = st.CreateNotification(ctx, 2, "theirs", "")
	require.NoError(t, err)

	notifications, err := st.GetNotifications(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "mine", notifications[0].Message)
}

func TestGetUnreadCount(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	count, err := st.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	first, err := st.CreateNotification(ctx, 1, "a", "")
	require.NoError(t, err)
	_, err = st.CreateNotification(ctx, 1, "b", "")
	require.NoError(t, err)

	count, err = st.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = st.MarkNotificationRead(ctx, first.ID)
	require.NoError(t, err)

	count, err = st.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkNotificationRead_UnknownID(t *testing.T) {
	st := newTestStore()

	_, err := st.MarkNotificationRead(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestMarkAllNotificationsRead_OnlyTouchesOwner(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	_, err := st.CreateNotification(ctx, 1, "a", "")
	require.NoError(t, err)
	_, err = st.CreateNotification(ctx, 1, "b", "")
	require.NoError(t, err)
	_, err = st.CreateNotification(ctx, 2, "c", "")
	require.NoError(t, err)

	require.NoError(t, st.MarkAllNotificationsRead(ctx, 1))

	count, err := st.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = st.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeed_LoadsDemoAccount(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	require.NoError(t, st.Seed(ctx))

	user, err := st.GetUserByUsername(ctx, "adam.smith")
	require.NoError(t, err)

	loans, err := st.GetLoansByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "PX3ERF9ND", loans[0].LoanRef)

	payments, err := st.GetPayments(ctx, loans[0].ID)
	require.NoError(t, err)
	assert.Len(t, payments, 13)

	count, err := st.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

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

func newTestStore() *MemStore {
	return New(clockwork.NewFakeClock())
}

func TestCreateUser_AssignsSequentialIDs(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	first, err := st.CreateUser(ctx, domain.NewUser{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	second, err := st.CreateUser(ctx, domain.NewUser{Username: "bob", PasswordHash: "x"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateUser_RejectsDuplicateUsername(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	_, err := st.CreateUser(ctx, domain.NewUser{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = st.CreateUser(ctx, domain.NewUser{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestGetUserByUsername(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	created, err := st.CreateUser(ctx, domain.NewUser{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	found, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = st.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUser_ReturnsCopy(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	created, err := st.CreateUser(ctx, domain.NewUser{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	got, err := st.GetUser(ctx, created.ID)
	require.NoError(t, err)
	got.Username = "mutated"

	again, err := st.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
}

func TestUpdateLoan_PartialUpdate(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	loan, err := st.CreateLoan(ctx, domain.Loan{
		UserID:            1,
		OutstandingAmount: 1000,
		PaymentsLeft:      5,
		Status:            "Current",
	})
	require.NoError(t, err)

	outstanding := 900.0
	updated, err := st.UpdateLoan(ctx, loan.ID, domain.LoanUpdate{OutstandingAmount: &outstanding})
	require.NoError(t, err)

	assert.Equal(t, 900.0, updated.OutstandingAmount)
	assert.Equal(t, 5, updated.PaymentsLeft)
	assert.Equal(t, "Current", updated.Status)
}

func TestUpdateLoan_UnknownID(t *testing.T) {
	st := newTestStore()

	_, err := st.UpdateLoan(context.Background(), 99, domain.LoanUpdate{})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestGetPayments_SortedByDateAscending(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	dates := []time.Time{
		date(2024, 3, 1),
		date(2024, 1, 1),
		date(2024, 2, 1),
	}
	for _, d := range dates {
		_, err := st.CreatePayment(ctx, domain.NewPayment{LoanID: 1, UserID: 1, Amount: 100, PaymentDate: d})
		require.NoError(t, err)
	}

	payments, err := st.GetPayments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, date(2024, 1, 1), payments[0].PaymentDate)
	assert.Equal(t, date(2024, 2, 1), payments[1].PaymentDate)
	assert.Equal(t, date(2024, 3, 1), payments[2].PaymentDate)
}

func TestUpdatePaymentStatus(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	payment, err := st.CreatePayment(ctx, domain.NewPayment{LoanID: 1, UserID: 1, Amount: 100, Status: "Scheduled"})
	require.NoError(t, err)

	updated, err := st.UpdatePaymentStatus(ctx, payment.ID, "Deferred")
	require.NoError(t, err)
	assert.Equal(t, "Deferred", updated.Status)

	_, err = st.UpdatePaymentStatus(ctx, 99, "Deferred")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestSetPrimaryPaymentMethod_ClearsOthers(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	first, err := st.CreatePaymentMethod(ctx, domain.PaymentMethod{UserID: 1, Type: "Checking Account", IsPrimary: true})
	require.NoError(t, err)
	second, err := st.CreatePaymentMethod(ctx, domain.PaymentMethod{UserID: 1, Type: "Debit Card"})
	require.NoError(t, err)

	require.NoError(t, st.SetPrimaryPaymentMethod(ctx, 1, second.ID))

	methods, err := st.GetPaymentMethods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.False(t, methods[0].IsPrimary)
	assert.True(t, methods[1].IsPrimary)
	assert.Equal(t, first.ID, methods[0].ID)
}

func TestSetPrimaryPaymentMethod_RejectsOtherUsersMethod(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	method, err := st.CreatePaymentMethod(ctx, domain.PaymentMethod{UserID: 1, Type: "Debit Card"})
	require.NoError(t, err)

	err = st.SetPrimaryPaymentMethod(ctx, 2, method.ID)
	assert.ErrorIs(t, err, domain.ErrMethodNotFound)
}

func TestGetTransactions_NewestFirstWithLimit(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	for i, d := range []time.Time{date(2023, 1, 1), date(2023, 3, 1), date(2023, 2, 1)} {
		_, err := st.CreateTransaction(ctx, domain.Transaction{UserID: 1, Name: "tx", Amount: float64(i), Date: d})
		require.NoError(t, err)
	}

	all, err := st.GetTransactionsByUserID(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, date(2023, 3, 1), all[0].Date)
	assert.Equal(t, date(2023, 1, 1), all[2].Date)

	limited, err := st.GetTransactionsByUserID(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAddRewardPoints(t *testing.T) {
	st := newTestStore()
	ctx := context.Background()

	_, err := st.CreateReward(ctx, domain.Reward{UserID: 1, CurrentPoints: 100, TotalEarnedPoints: 200})
	require.NoError(t, err)

	reward, err := st.AddRewardPoints(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 110, reward.CurrentPoints)
	assert.Equal(t, 210, reward.TotalEarnedPoints)

	// Redemptions reduce the balance but never the lifetime total.
	reward, err = st.AddRewardPoints(ctx, 1, -50)
	require.NoError(t, err)
	assert.Equal(t, 60, reward.CurrentPoints)
	assert.Equal(t, 210, reward.TotalEarnedPoints)

	_, err = st.AddRewardPoints(ctx, 99, 10)
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)
}

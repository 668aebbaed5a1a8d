package repository

import (
	"context"
	"testing"
	"time"

	"booking_system/internal/domain"
	"booking_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment(order string, status domain.PaymentStatus, amount float64, createdAt time.Time) *domain.Payment {
	return &domain.Payment{
		OrderNumber:    order,
		CustomerName:   "Guest " + order,
		CustomerEmail:  order + "@mail.com",
		CustomerPhone:  "+1-555-0100",
		Product:        "Deluxe Suite",
		Amount:         amount,
		Currency:       domain.DefaultCurrency,
		PaymentMethod:  "Credit Card",
		Status:         status,
		NumberOfGuests: 1,
		CreatedAt:      createdAt,
	}
}

func TestPaymentRepositoryListNewestFirst(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newPayment("ORD001", domain.PaymentPending, 10, base)))
	require.NoError(t, repo.Create(ctx, newPayment("ORD002", domain.PaymentPending, 20, base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newPayment("ORD003", domain.PaymentPending, 30, base.Add(2*time.Hour))))

	list, err := repo.List(ctx, PaymentQuery{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ORD003", list[0].OrderNumber)
	assert.Equal(t, "ORD002", list[1].OrderNumber)
	assert.Equal(t, "ORD001", list[2].OrderNumber)

	asc, err := repo.List(ctx, PaymentQuery{SortField: "amount", Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, "ORD001", asc[0].OrderNumber)

	page, err := repo.List(ctx, PaymentQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ORD001", page[0].OrderNumber)
}

func TestPaymentRepositoryFilterAndCount(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newPayment("ORD-A", domain.PaymentCompleted, 100, now)))
	require.NoError(t, repo.Create(ctx, newPayment("ORD-B", domain.PaymentPending, 50, now)))
	require.NoError(t, repo.Create(ctx, newPayment("XYZ-C", domain.PaymentCompleted, 70, now)))

	completed, err := repo.List(ctx, PaymentQuery{PaymentFilter: PaymentFilter{Status: domain.PaymentCompleted}})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	n, err := repo.Count(ctx, PaymentFilter{Status: domain.PaymentCompleted, Search: "ord"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	total, err := repo.Count(ctx, PaymentFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestPaymentRepositorySumAmounts(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	ctx := context.Background()

	empty, err := repo.SumAmounts(ctx, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Average)

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newPayment("O1", domain.PaymentCompleted, 100, now)))
	require.NoError(t, repo.Create(ctx, newPayment("O2", domain.PaymentCompleted, 200, now)))
	require.NoError(t, repo.Create(ctx, newPayment("O3", domain.PaymentPending, 50, now)))

	sum, err := repo.SumAmounts(ctx, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.InDelta(t, 300, sum.Total, 1e-9)
	assert.InDelta(t, 150, sum.Average, 1e-9)
}

func TestPaymentRepositoryUpdateDelete(t *testing.T) {
	repo := NewPaymentRepository(testutil.NewDB(t))
	ctx := context.Background()

	p := newPayment("ORD900", domain.PaymentPending, 80, time.Now())
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByOrderNumber(ctx, "ORD900")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	updated, err := repo.Update(ctx, p.ID, map[string]any{"status": domain.PaymentCompleted, "notes": "paid at desk"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, updated.Status)
	assert.Equal(t, "paid at desk", updated.Notes)
	assert.Equal(t, 80.0, updated.Amount)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
	_, err = repo.Update(ctx, p.ID, map[string]any{"notes": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

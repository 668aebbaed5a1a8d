package seed

import (
	"context"
	"testing"
	"time"

	"booking_system/internal/repository"
	"booking_system/internal/service"
	"booking_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeedsThroughServices(t *testing.T) {
	gdb := testutil.NewDB(t)
	validate := service.NewValidator()
	users := service.NewUserService(repository.NewUserRepository(gdb), validate, service.TokenConfig{Secret: "seed", TTL: time.Hour}, nil)
	payments := service.NewPaymentService(repository.NewPaymentRepository(gdb), validate)
	ctx := context.Background()

	res, err := Run(ctx, users, payments)
	require.NoError(t, err)
	assert.Equal(t, Result{UsersCreated: 8, PaymentsCreated: 6}, res)

	login, err := users.Login(ctx, "john.doe@example.com", SamplePassword)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", login.User.Name)

	stored, err := repository.NewUserRepository(gdb).FindByGmail(ctx, "john.doe@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, SamplePassword, stored.Password)

	stats, err := payments.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalPayments)
	assert.Equal(t, int64(3), stats.CompletedPayments)
	assert.Equal(t, int64(1), stats.PendingPayments)
	assert.Equal(t, int64(1), stats.FailedPayments)
	assert.InDelta(t, 1549.97, stats.TotalAmount, 1e-6)

	again, err := Run(ctx, users, payments)
	require.NoError(t, err)
	assert.Equal(t, Result{UsersSkipped: 8, PaymentsSkipped: 6}, again)
}

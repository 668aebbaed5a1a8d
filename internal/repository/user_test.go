package repository

import (
	"context"
	"testing"

	"booking_system/internal/domain"
	"booking_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(name, gmail, gender string, age int) *domain.User {
	return &domain.User{
		Name:        name,
		Gmail:       gmail,
		Password:    "hash",
		Age:         age,
		Gender:      gender,
		Address:     "12 Lake Road",
		PhoneNumber: "+94-77-000",
	}
}

func TestUserRepositoryCRUD(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := newUser("Nimal", "nimal@gmail.com", "Male", 30)
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "nimal@gmail.com", got.Gmail)

	byGmail, err := repo.FindByGmail(ctx, "nimal@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byGmail.ID)

	updated, err := repo.Update(ctx, u.ID, map[string]any{"name": "Nimal P", "age": 31})
	require.NoError(t, err)
	assert.Equal(t, "Nimal P", updated.Name)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "Male", updated.Gender)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryMissingID(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, "does-not-exist", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "does-not-exist"), ErrNotFound)
}

func TestUserRepositoryFindAllFilters(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("Ann Perera", "ann@gmail.com", "Female", 22)))
	require.NoError(t, repo.Create(ctx, newUser("Kamal Silva", "kamal@gmail.com", "Male", 40)))
	require.NoError(t, repo.Create(ctx, newUser("Sara Fernando", "sara@gmail.com", "Female", 55)))

	all, err := repo.FindAll(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	women, err := repo.FindAll(ctx, UserFilter{Gender: "Female"})
	require.NoError(t, err)
	assert.Len(t, women, 2)

	search, err := repo.FindAll(ctx, UserFilter{Search: "SILVA"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "kamal@gmail.com", search[0].Gmail)

	band, err := repo.FindAll(ctx, UserFilter{Gender: "Female", MinAge: 18, MaxAge: 25})
	require.NoError(t, err)
	require.Len(t, band, 1)
	assert.Equal(t, "ann@gmail.com", band[0].Gmail)

	byAge, err := repo.FindAll(ctx, UserFilter{SortField: "age"})
	require.NoError(t, err)
	require.Len(t, byAge, 3)
	assert.Equal(t, "sara@gmail.com", byAge[0].Gmail, "descending unless Ascending is set")

	byName, err := repo.FindAll(ctx, UserFilter{SortField: "name", Ascending: true})
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, []string{"Ann Perera", "Kamal Silva", "Sara Fernando"},
		[]string{byName[0].Name, byName[1].Name, byName[2].Name})
}

func TestUserRepositoryEmptyListIsNotNil(t *testing.T) {
	repo := NewUserRepository(testutil.NewDB(t))
	users, err := repo.FindAll(context.Background(), UserFilter{})
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

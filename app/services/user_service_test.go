package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func TestUserListingNewestFirst(t *testing.T) {
	db := testkit.OpenDB(t)
	older := testkit.CreateUser(t, db, "user")
	newer := testkit.CreateUser(t, db, "user")

	users, pagination, err := NewUserService(db).All("", 1, 20)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, newer.ID, users[0].ID)
	assert.Equal(t, older.ID, users[1].ID)
	assert.EqualValues(t, 2, pagination.Total)
}

func TestUserListingFiltersByRole(t *testing.T) {
	db := testkit.OpenDB(t)
	testkit.CreateUser(t, db, "user")
	testkit.CreateUser(t, db, "user")
	admin := testkit.CreateUser(t, db, "admin")

	svc := NewUserService(db)

	admins, _, err := svc.All("admin", 1, 20)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)

	customers, _, err := svc.All("user", 1, 20)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestUserListingRejectsUnknownRole(t *testing.T) {
	db := testkit.OpenDB(t)

	_, _, err := NewUserService(db).All("superuser", 1, 20)
	assert.ErrorIs(t, err, ErrBadRole)
}

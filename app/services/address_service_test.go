package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func springfield() AddressInput {
	return AddressInput{Street: "12 High Street", City: "Springfield", State: "IL", Zip: "62701"}
}

func TestAddressCreateDeduplicates(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	svc := NewAddressService(db)

	first, err := svc.Create(user.ID, springfield())
	require.NoError(t, err)

	second, err := svc.Create(user.ID, springfield())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, testkit.CountRows(t, db, &models.Address{}))

	other := springfield()
	other.Zip = "62702"
	third, err := svc.Create(user.ID, other)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestAddressDedupIsPerUser(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, "user")
	bob := testkit.CreateUser(t, db, "user")
	svc := NewAddressService(db)

	a, err := svc.Create(alice.ID, springfield())
	require.NoError(t, err)
	b, err := svc.Create(bob.ID, springfield())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSetDefaultLeavesExactlyOne(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	svc := NewAddressService(db)

	first, err := svc.Create(user.ID, springfield())
	require.NoError(t, err)

	other := springfield()
	other.Street = "9 Oak Avenue"
	second, err := svc.Create(user.ID, other)
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(user.ID, first.ID))
	require.NoError(t, svc.SetDefault(user.ID, second.ID))

	var defaults int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("user_id = ? AND is_default", user.ID).Count(&defaults).Error)
	assert.EqualValues(t, 1, defaults)

	var current models.Address
	require.NoError(t, db.Where("user_id = ? AND is_default", user.ID).First(&current).Error)
	assert.Equal(t, second.ID, current.ID)
}

func TestSetDefaultRejectsForeignAddress(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, "user")
	bob := testkit.CreateUser(t, db, "user")
	svc := NewAddressService(db)

	addr, err := svc.Create(alice.ID, springfield())
	require.NoError(t, err)

	require.Error(t, svc.SetDefault(bob.ID, addr.ID))
}

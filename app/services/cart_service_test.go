package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func TestCartAddUpsertsQuantity(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 3.00, 10)
	svc := NewCartService(db)

	first, err := svc.Add(user.ID, AddToCartInput{MedicineID: medicine.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := svc.Add(user.ID, AddToCartInput{MedicineID: medicine.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-adding must reuse the line")
	assert.Equal(t, 5, second.Quantity)

	assert.EqualValues(t, 1, testkit.CountRows(t, db, &models.CartItem{}))
}

func TestCartAddRejectsUnknownMedicine(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")

	_, err := NewCartService(db).Add(user.ID, AddToCartInput{MedicineID: 4242, Quantity: 1})
	require.ErrorIs(t, err, ErrUnknownMedicine)
}

func TestCartTotalUsesCatalogPrices(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	a := testkit.CreateMedicine(t, db, 2.50, 10)
	b := testkit.CreateMedicine(t, db, 4.00, 10)
	svc := NewCartService(db)

	_, err := svc.Add(user.ID, AddToCartInput{MedicineID: a.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(user.ID, AddToCartInput{MedicineID: b.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.InDelta(t, 9.00, cart.Total, 0.001)
}

func TestCartItemsAreScopedPerUser(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, "user")
	bob := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 1.00, 10)
	svc := NewCartService(db)

	item, err := svc.Add(alice.ID, AddToCartInput{MedicineID: medicine.ID, Quantity: 1})
	require.NoError(t, err)

	// Bob cannot edit or remove Alice's line.
	_, err = svc.UpdateQuantity(bob.ID, item.ID, UpdateCartInput{Quantity: 5})
	require.Error(t, err)
	require.NoError(t, svc.Remove(bob.ID, item.ID))

	cart, err := svc.Get(alice.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

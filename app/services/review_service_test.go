package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func TestReviewUpsertRecomputesRating(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, "user")
	bob := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 5.00, 10)
	svc := NewReviewService(db)

	_, err := svc.Upsert(alice.ID, medicine.ID, ReviewInput{Rating: 5, Comment: "works great"})
	require.NoError(t, err)
	_, err = svc.Upsert(bob.ID, medicine.ID, ReviewInput{Rating: 2})
	require.NoError(t, err)

	var rated models.Medicine
	require.NoError(t, db.First(&rated, medicine.ID).Error)
	assert.InDelta(t, 3.5, rated.Rating, 0.001)
	assert.Equal(t, 2, rated.ReviewCount)
}

func TestReviewUpsertReplacesOwnReview(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 5.00, 10)
	svc := NewReviewService(db)

	_, err := svc.Upsert(user.ID, medicine.ID, ReviewInput{Rating: 2})
	require.NoError(t, err)
	_, err = svc.Upsert(user.ID, medicine.ID, ReviewInput{Rating: 4, Comment: "better than expected"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, testkit.CountRows(t, db, &models.Review{}), "one review per user per medicine")

	var rated models.Medicine
	require.NoError(t, db.First(&rated, medicine.ID).Error)
	assert.InDelta(t, 4.0, rated.Rating, 0.001)
	assert.Equal(t, 1, rated.ReviewCount)
}

func TestReviewDeleteRecomputesRating(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")
	medicine := testkit.CreateMedicine(t, db, 5.00, 10)
	svc := NewReviewService(db)

	review, err := svc.Upsert(user.ID, medicine.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(user.ID, review.ID))

	var rated models.Medicine
	require.NoError(t, db.First(&rated, medicine.ID).Error)
	assert.Zero(t, rated.Rating)
	assert.Zero(t, rated.ReviewCount)
}

func TestReviewRejectsUnknownMedicine(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, "user")

	_, err := NewReviewService(db).Upsert(user.ID, 999, ReviewInput{Rating: 3})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Package testkit bootstraps an isolated database and model factories
// for service and repository tests.
package testkit

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/queue"
)

var dbSeq atomic.Int64

// OpenDB returns a fresh in-memory sqlite database with the full schema
// migrated. Each call gets its own database; it is dropped when the test
// finishes.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testkit%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The shared in-memory database disappears with its last connection.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Medicine{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Review{},
		&models.Notification{},
		&queue.FailedJobRecord{},
	))

	t.Cleanup(func() { sqlDB.Close() }) //nolint:errcheck
	return db
}

var userSeq atomic.Int64

// CreateUser inserts a user with a unique email.
func CreateUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()

	n := userSeq.Add(1)
	user := models.User{
		Name:     fmt.Sprintf("User %d", n),
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateCategory inserts a category with a unique name.
func CreateCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()

	category := models.Category{Name: fmt.Sprintf("Category %d", userSeq.Add(1))}
	require.NoError(t, db.Create(&category).Error)
	return category
}

// CreateMedicine inserts a medicine under a fresh category.
func CreateMedicine(t *testing.T, db *gorm.DB, price float64, stock int) models.Medicine {
	t.Helper()

	category := CreateCategory(t, db)
	medicine := models.Medicine{
		Name:       fmt.Sprintf("Medicine %d", userSeq.Add(1)),
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&medicine).Error)
	return medicine
}

// CreateCartItem puts a medicine in a user's cart.
func CreateCartItem(t *testing.T, db *gorm.DB, userID, medicineID uint, quantity int) models.CartItem {
	t.Helper()

	item := models.CartItem{UserID: userID, MedicineID: medicineID, Quantity: quantity}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// CountRows returns the number of rows for a model.
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

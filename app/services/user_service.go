package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/auth"
	"github.com/hassanmehmood/medicart/pkg/orm"
)

// ErrBadRole rejects an unknown role filter on the account listing.
var ErrBadRole = errors.New("users: invalid role")

// UserService serves the admin account listing. Customer and admin
// accounts live in one table, told apart by role.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repositories.NewUserRepository(db)}
}

func (s *UserService) All(role string, page, limit int) ([]models.User, orm.Pagination, error) {
	if role != "" && role != auth.RoleUser && role != auth.RoleAdmin {
		return nil, orm.Pagination{}, ErrBadRole
	}
	return s.users.All(role, page, limit)
}

package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/jobs"
	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/auth"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/queue"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrEmailTaken rejects duplicate registrations.
	ErrEmailTaken = errors.New("auth: email already registered")
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the token plus its subject.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a user account and queues the welcome email.
func (s *AuthService) Register(in RegisterInput) (AuthResult, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResult{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     auth.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		return AuthResult{}, err
	}

	if err := queue.Dispatch(&jobs.WelcomeEmailJob{UserID: user.ID}); err != nil {
		logger.Error("auth: welcome dispatch failed", "user_id", user.ID, "error", err)
	}

	return s.issueToken(user)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(in LoginInput) (AuthResult, error) {
	user, err := s.users.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// Profile returns the account behind a token's claims.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}

func (s *AuthService) issueToken(user models.User) (AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

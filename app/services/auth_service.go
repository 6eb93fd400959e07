package services

import (
	"errors"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/pkg/auth"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"gorm.io/gorm"
)

// AuthService registers accounts and issues JWTs.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a customer account and returns it with a fresh token.
func (s *AuthService) Register(name, email, password string) (models.User, string, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}

	logger.Info("auth: user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

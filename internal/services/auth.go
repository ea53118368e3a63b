package services

import (
	"context"
	"errors"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("неверный email или пароль")
)

// AuthService — единственная точка проверки учётных данных.
// Пароли хранятся и сравниваются в открытом виде; замена на хеширование
// не затронет обработчики, меняется только Verify.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	utils.LogSuccess("AuthService", "Инициализирован сервис аутентификации")
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.LogWarning("AuthService", "Пользователь не найден: %s", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != password {
		utils.LogWarning("AuthService", "Неверный пароль для пользователя: %s", email)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

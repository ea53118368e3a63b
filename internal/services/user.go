package services

import (
	"context"
	"errors"
	"strings"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"
)

var (
	ErrInvalidEmail  = errors.New("некорректный формат email")
	ErrShortPassword = errors.New("пароль должен быть не менее 6 символов")
	ErrUserExists    = errors.New("пользователь уже существует")
)

const minPasswordLength = 6

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser создаёт обычного пользователя (is_admin всегда false).
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	utils.LogInfo("UserService", "Создание пользователя: %s", email)

	if err := validateNewUser(email, password); err != nil {
		utils.LogWarning("UserService", "Ошибка валидации для %s: %v", email, err)
		return nil, err
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		utils.LogWarning("UserService", "Пользователь уже существует: %s", email)
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: password,
		IsAdmin:  false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	utils.LogSuccess("UserService", "Пользователь %s создан (ID: %d)", user.Email, user.ID)
	return user, nil
}

func validateNewUser(email, password string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrShortPassword
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/models"
	"library-backend/internal/utils"
)

var (
	ErrUserNotFound = errors.New("пользователь не найден")
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, password, is_admin) VALUES ($1, $2, $3) RETURNING id`

	utils.LogDB("CREATE USER", fmt.Sprintf("Создание пользователя: %s", user.Email))

	err := r.db.QueryRow(ctx, query, user.Email, user.Password, user.IsAdmin).Scan(&user.ID)
	if err != nil {
		utils.LogError("UserRepository", fmt.Sprintf("Ошибка создания пользователя %s", user.Email), err)
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	utils.LogSuccess("UserRepository", "Пользователь создан: %s (ID: %d)", user.Email, user.ID)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password, is_admin FROM users WHERE email = $1`

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Password, &user.IsAdmin)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT id, email, password, is_admin FROM users WHERE id = $1`

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Email, &user.Password, &user.IsAdmin)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	return user, nil
}

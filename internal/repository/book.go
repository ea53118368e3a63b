package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/models"
)

var (
	ErrBookNotFound = errors.New("книга не найдена")
)

type BookRepository struct {
	db *pgxpool.Pool
}

func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	query := `
		SELECT id, title, author, copies_available
		FROM books
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения каталога: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.CopiesAvailable)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования книги: %w", err)
		}
		books = append(books, book)
	}

	return books, nil
}

func (r *BookRepository) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	query := `SELECT id, title, author, copies_available FROM books WHERE id = $1`

	var book models.Book
	err := r.db.QueryRow(ctx, query, bookID).Scan(&book.ID, &book.Title, &book.Author, &book.CopiesAvailable)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("ошибка поиска книги: %w", err)
	}

	return &book, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/models"
	"library-backend/internal/utils"
)

var (
	ErrRequestNotFound  = errors.New("заявка не найдена")
	ErrAlreadyProcessed = errors.New("заявка уже обработана")
	ErrNoCopies         = errors.New("нет доступных экземпляров")
	ErrPeriodTaken      = errors.New("книга уже выдана на этот период")
)

type RequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

// Submit создаёт заявку на бронирование в одной транзакции.
// Строка книги блокируется FOR UPDATE, чтобы проверка доступности и
// пересечений не гонялась с параллельным одобрением по той же книге.
func (r *RequestRepository) Submit(
	ctx context.Context,
	userID, bookID int64,
	startDate, endDate time.Time,
) (*models.BorrowRequest, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var copiesAvailable int
	err = tx.QueryRow(ctx,
		"SELECT copies_available FROM books WHERE id = $1 FOR UPDATE",
		bookID,
	).Scan(&copiesAvailable)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("ошибка проверки книги: %w", err)
	}

	if copiesAvailable <= 0 {
		return nil, ErrNoCopies
	}

	overlapping, err := r.hasApprovedOverlap(ctx, tx, bookID, startDate, endDate, 0)
	if err != nil {
		return nil, err
	}
	if overlapping {
		return nil, ErrPeriodTaken
	}

	query := `
		INSERT INTO borrow_requests (user_id, book_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, book_id, start_date, end_date, status
	`

	var request models.BorrowRequest
	err = tx.QueryRow(ctx, query, userID, bookID, startDate, endDate, models.StatusPending).Scan(
		&request.ID,
		&request.UserID,
		&request.BookID,
		&request.StartDate,
		&request.EndDate,
		&request.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания заявки: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подтверждения транзакции: %w", err)
	}

	utils.LogSuccess("RequestRepo", "Заявка %d создана: пользователь %d, книга %d (%s — %s)",
		request.ID, userID, bookID,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	return &request, nil
}

// Approve переводит Pending-заявку в Approved и списывает экземпляр.
// Проверка пересечений и декремент счётчика выполняются в одной транзакции
// под блокировкой строк заявки и книги: два параллельных одобрения по одной
// книге сериализуются на блокировке.
func (r *RequestRepository) Approve(ctx context.Context, requestID int64) (*models.BorrowRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var request models.BorrowRequest
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, book_id, start_date, end_date, status
		 FROM borrow_requests WHERE id = $1 FOR UPDATE`,
		requestID,
	).Scan(
		&request.ID,
		&request.UserID,
		&request.BookID,
		&request.StartDate,
		&request.EndDate,
		&request.Status,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}

	if request.Status != models.StatusPending {
		return nil, ErrAlreadyProcessed
	}

	var copiesAvailable int
	err = tx.QueryRow(ctx,
		"SELECT copies_available FROM books WHERE id = $1 FOR UPDATE",
		request.BookID,
	).Scan(&copiesAvailable)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("ошибка проверки книги: %w", err)
	}

	overlapping, err := r.hasApprovedOverlap(ctx, tx, request.BookID, request.StartDate, request.EndDate, request.ID)
	if err != nil {
		return nil, err
	}
	if overlapping {
		return nil, ErrPeriodTaken
	}

	_, err = tx.Exec(ctx,
		"UPDATE borrow_requests SET status = $1 WHERE id = $2",
		models.StatusApproved, request.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления статуса заявки: %w", err)
	}

	// Счётчик только убывает, возврат экземпляров не реализован.
	_, err = tx.Exec(ctx,
		"UPDATE books SET copies_available = copies_available - 1 WHERE id = $1",
		request.BookID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка списания экземпляра: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подтверждения транзакции: %w", err)
	}

	request.Status = models.StatusApproved

	utils.LogSuccess("RequestRepo", "Заявка %d одобрена: книга %d, осталось экземпляров %d",
		request.ID, request.BookID, copiesAvailable-1)

	return &request, nil
}

// Deny безусловно ставит статус Denied. Терминальные статусы не
// проверяются: повторный отказ и отказ по одобренной заявке проходят.
func (r *RequestRepository) Deny(ctx context.Context, requestID int64) error {
	result, err := r.db.Exec(ctx,
		"UPDATE borrow_requests SET status = $1 WHERE id = $2",
		models.StatusDenied, requestID,
	)
	if err != nil {
		return fmt.Errorf("ошибка отклонения заявки: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	utils.LogSuccess("RequestRepo", "Заявка %d отклонена", requestID)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, requestID int64) (*models.BorrowRequest, error) {
	query := `
		SELECT id, user_id, book_id, start_date, end_date, status
		FROM borrow_requests
		WHERE id = $1
	`

	var request models.BorrowRequest
	err := r.db.QueryRow(ctx, query, requestID).Scan(
		&request.ID,
		&request.UserID,
		&request.BookID,
		&request.StartDate,
		&request.EndDate,
		&request.Status,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}

	return &request, nil
}

func (r *RequestRepository) GetAllWithTitles(ctx context.Context) ([]models.RequestWithBook, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.start_date, r.end_date, r.status, b.title
		FROM borrow_requests r
		INNER JOIN books b ON r.book_id = b.id
		ORDER BY r.id
	`

	return r.queryWithTitles(ctx, query)
}

func (r *RequestRepository) GetByUserWithTitles(ctx context.Context, userID int64) ([]models.RequestWithBook, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.start_date, r.end_date, r.status, b.title
		FROM borrow_requests r
		INNER JOIN books b ON r.book_id = b.id
		WHERE r.user_id = $1
		ORDER BY r.id
	`

	return r.queryWithTitles(ctx, query, userID)
}

func (r *RequestRepository) queryWithTitles(ctx context.Context, query string, args ...interface{}) ([]models.RequestWithBook, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	defer rows.Close()

	var requests []models.RequestWithBook
	for rows.Next() {
		var req models.RequestWithBook
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.BookID,
			&req.StartDate,
			&req.EndDate,
			&req.Status,
			&req.BookTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// hasApprovedOverlap — предикат пересечения периодов:
// existing.start <= end AND existing.end >= start среди Approved-заявок книги.
// excludeID исключает саму заявку при повторной проверке на одобрении.
func (r *RequestRepository) hasApprovedOverlap(
	ctx context.Context,
	tx pgx.Tx,
	bookID int64,
	startDate, endDate time.Time,
	excludeID int64,
) (bool, error) {

	query := `
		SELECT EXISTS(
			SELECT 1 FROM borrow_requests
			WHERE book_id = $1
			  AND status = $2
			  AND start_date <= $3
			  AND end_date >= $4
			  AND id <> $5
		)
	`

	var exists bool
	err := tx.QueryRow(ctx, query, bookID, models.StatusApproved, endDate, startDate, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки пересечений: %w", err)
	}

	return exists, nil
}

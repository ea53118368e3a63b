package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"
)

var (
	ErrInvalidAction = errors.New("недопустимое действие")
	ErrBadDate       = errors.New("некорректный формат даты, ожидается YYYY-MM-DD")
)

const (
	ActionApprove = "approve"
	ActionDeny    = "deny"

	dateLayout = "2006-01-02"
)

type BorrowService struct {
	requestRepo *repository.RequestRepository
	userRepo    *repository.UserRepository
}

func NewBorrowService(requestRepo *repository.RequestRepository, userRepo *repository.UserRepository) *BorrowService {
	return &BorrowService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// Submit создаёт Pending-заявку от имени пользователя.
// Доступность книги и пересечения проверяются в транзакции репозитория.
func (s *BorrowService) Submit(ctx context.Context, userID int64, req models.SubmitRequest) (*models.BorrowRequest, error) {
	utils.LogInfo("BorrowService", "Заявка от пользователя %d: книга %d (%s — %s)",
		userID, req.BookID, req.StartDate, req.EndDate)

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		utils.LogWarning("BorrowService", "Ошибка разбора периода: %v", err)
		return nil, err
	}

	request, err := s.requestRepo.Submit(ctx, userID, req.BookID, startDate, endDate)
	if err != nil {
		utils.LogError("BorrowService", "Ошибка создания заявки", err)
		return nil, err
	}

	return request, nil
}

// Decide выполняет действие администратора над заявкой.
// Существование заявки проверяется до разбора действия: неизвестная
// заявка даёт 404 даже при недопустимом действии.
func (s *BorrowService) Decide(ctx context.Context, requestID int64, action string) error {
	utils.LogInfo("BorrowService", "Действие %q над заявкой %d", action, requestID)

	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return err
	}

	switch action {
	case ActionApprove:
		_, err := s.requestRepo.Approve(ctx, requestID)
		return err
	case ActionDeny:
		return s.requestRepo.Deny(ctx, requestID)
	default:
		return ErrInvalidAction
	}
}

func (s *BorrowService) ListAll(ctx context.Context) ([]models.BorrowRequestResponse, error) {
	requests, err := s.requestRepo.GetAllWithTitles(ctx)
	if err != nil {
		utils.LogError("BorrowService", "Ошибка получения списка заявок", err)
		return nil, err
	}

	responses := make([]models.BorrowRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, models.BorrowRequestResponse{
			ID:        req.ID,
			BookID:    req.BookID,
			BookTitle: req.BookTitle,
			StartDate: req.StartDate.Format(dateLayout),
			EndDate:   req.EndDate.Format(dateLayout),
			Status:    string(req.Status),
		})
	}

	utils.LogSuccess("BorrowService", "Список заявок получен: %d шт.", len(responses))
	return responses, nil
}

// UserHistory — история заявок произвольного пользователя (для администратора).
func (s *BorrowService) UserHistory(ctx context.Context, userID int64) ([]models.HistoryEntry, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.OwnHistory(ctx, userID)
}

// OwnHistory — история заявок вызывающего пользователя.
func (s *BorrowService) OwnHistory(ctx context.Context, userID int64) ([]models.HistoryEntry, error) {
	requests, err := s.requestRepo.GetByUserWithTitles(ctx, userID)
	if err != nil {
		utils.LogError("BorrowService", fmt.Sprintf("Ошибка получения истории пользователя %d", userID), err)
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(requests))
	for _, req := range requests {
		entries = append(entries, models.HistoryEntry{
			BookTitle: req.BookTitle,
			StartDate: req.StartDate.Format(dateLayout),
			EndDate:   req.EndDate.Format(dateLayout),
			Status:    string(req.Status),
		})
	}

	utils.LogSuccess("BorrowService", "История пользователя %d: %d записей", userID, len(entries))
	return entries, nil
}

// ExportHistoryCSV собирает историю пользователя в CSV-блоб в памяти.
func (s *BorrowService) ExportHistoryCSV(ctx context.Context, userID int64) (string, error) {
	entries, err := s.OwnHistory(ctx, userID)
	if err != nil {
		return "", err
	}

	return buildHistoryCSV(entries)
}

func buildHistoryCSV(entries []models.HistoryEntry) (string, error) {
	var out strings.Builder
	writer := csv.NewWriter(&out)

	if err := writer.Write([]string{"Book Title", "Start Date", "End Date", "Status"}); err != nil {
		return "", fmt.Errorf("ошибка записи CSV: %w", err)
	}

	for _, entry := range entries {
		record := []string{entry.BookTitle, entry.StartDate, entry.EndDate, entry.Status}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("ошибка записи CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("ошибка записи CSV: %w", err)
	}

	return out.String(), nil
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDate
	}

	endDate, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDate
	}

	return startDate, endDate, nil
}

package models

import "time"

// RequestStatus — статус заявки из закрытого набора.
// Pending переходит в Approved или Denied, оба статуса терминальные.
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusDenied   RequestStatus = "Denied"
)

type BorrowRequest struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	BookID    int64         `json:"book_id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    RequestStatus `json:"status"`
}

// Overlaps проверяет пересечение периода заявки с периодом [start, end].
// Границы включительные: existing.start <= end AND existing.end >= start.
func (r BorrowRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// RequestWithBook — заявка вместе с названием книги (join в репозитории).
type RequestWithBook struct {
	BorrowRequest
	BookTitle string `json:"book_title"`
}

type SubmitRequest struct {
	BookID    int64  `json:"book_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type BorrowRequestResponse struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"book_id"`
	BookTitle string `json:"book_title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type HistoryEntry struct {
	BookTitle string `json:"book_title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

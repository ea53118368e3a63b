package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/services"
	"library-backend/internal/testutil"
)

func newBorrowService(t *testing.T) (*services.BorrowService, *testFixture) {
	t.Helper()

	pool := testutil.MustOpenTestPool(t)
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	fixture := &testFixture{
		userID: testutil.InsertUser(t, pool, "reader@library.local", "secret1", false),
		bookID: testutil.InsertBook(t, pool, "Мастер и Маргарита", "Михаил Булгаков", 2),
	}

	return services.NewBorrowService(requestRepo, userRepo), fixture
}

type testFixture struct {
	userID int64
	bookID int64
}

func Test_BorrowService_SubmitAndDecide(t *testing.T) {
	service, fixture := newBorrowService(t)
	ctx := context.Background()

	request, err := service.Submit(ctx, fixture.userID, models.SubmitRequest{
		BookID:    fixture.bookID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)

	err = service.Decide(ctx, request.ID, "bogus")
	assert.ErrorIs(t, err, services.ErrInvalidAction)

	err = service.Decide(ctx, request.ID, services.ActionApprove)
	require.NoError(t, err)

	history, err := service.OwnHistory(ctx, fixture.userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Мастер и Маргарита", history[0].BookTitle)
	assert.Equal(t, "2024-01-01", history[0].StartDate)
	assert.Equal(t, "2024-01-10", history[0].EndDate)
	assert.Equal(t, "Approved", history[0].Status)
}

func Test_BorrowService_SubmitRejectsBadDates(t *testing.T) {
	service, fixture := newBorrowService(t)

	_, err := service.Submit(context.Background(), fixture.userID, models.SubmitRequest{
		BookID:    fixture.bookID,
		StartDate: "01/01/2024",
		EndDate:   "2024-01-10",
	})
	assert.ErrorIs(t, err, services.ErrBadDate)
}

// Неизвестная заявка даёт "не найдена" даже при недопустимом действии.
func Test_BorrowService_DecideUnknownRequest(t *testing.T) {
	service, _ := newBorrowService(t)

	err := service.Decide(context.Background(), 424242, "bogus")
	assert.ErrorIs(t, err, repository.ErrRequestNotFound)

	err = service.Decide(context.Background(), 424242, services.ActionApprove)
	assert.ErrorIs(t, err, repository.ErrRequestNotFound)
}

func Test_BorrowService_UserHistoryUnknownUser(t *testing.T) {
	service, _ := newBorrowService(t)

	_, err := service.UserHistory(context.Background(), 424242)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func Test_BorrowService_ExportHistoryCSV(t *testing.T) {
	service, fixture := newBorrowService(t)
	ctx := context.Background()

	request, err := service.Submit(ctx, fixture.userID, models.SubmitRequest{
		BookID:    fixture.bookID,
		StartDate: "2024-02-01",
		EndDate:   "2024-02-05",
	})
	require.NoError(t, err)

	err = service.Decide(ctx, request.ID, services.ActionDeny)
	require.NoError(t, err)

	blob, err := service.ExportHistoryCSV(ctx, fixture.userID)
	require.NoError(t, err)

	expected := "Book Title,Start Date,End Date,Status\n" +
		"Мастер и Маргарита,2024-02-01,2024-02-05,Denied\n"
	assert.Equal(t, expected, blob)
}

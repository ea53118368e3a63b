package handlers

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/services"
	"library-backend/internal/utils"
)

type BorrowHandler struct {
	borrowService *services.BorrowService
}

func NewBorrowHandler(borrowService *services.BorrowService) *BorrowHandler {
	utils.LogSuccess("BorrowHandler", "Инициализирован обработчик бронирования")
	return &BorrowHandler{borrowService: borrowService}
}

// Submit обрабатывает POST /requests — подача заявки на бронирование.
func (h *BorrowHandler) Submit(ctx *fasthttp.RequestCtx) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req models.SubmitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("BorrowHandler", "Ошибка парсинга JSON", err)
		writeError(ctx, fasthttp.StatusBadRequest, "Неверный формат данных")
		return
	}

	request, err := h.borrowService.Submit(ctx, user.ID, req)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "Книга не найдена")
		} else if errors.Is(err, repository.ErrNoCopies) {
			writeError(ctx, fasthttp.StatusBadRequest, "Нет доступных экземпляров")
		} else if errors.Is(err, repository.ErrPeriodTaken) {
			writeError(ctx, fasthttp.StatusBadRequest, "Книга уже выдана на этот период")
		} else if errors.Is(err, services.ErrBadDate) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		} else {
			writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка создания заявки")
		}
		utils.LogError("BorrowHandler", "Ошибка создания заявки", err)
		return
	}

	utils.LogSuccess("BorrowHandler", "Заявка %d принята от пользователя %s", request.ID, user.Email)

	writeJSON(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message":    "Заявка успешно подана",
		"request_id": request.ID,
	})
}

// History обрабатывает GET /history — история вызывающего пользователя.
func (h *BorrowHandler) History(ctx *fasthttp.RequestCtx) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	history, err := h.borrowService.OwnHistory(ctx, user.ID)
	if err != nil {
		utils.LogError("BorrowHandler", "Ошибка получения истории", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка получения истории")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, history)
}

// DownloadHistory обрабатывает GET /download-history — CSV-выгрузка истории.
func (h *BorrowHandler) DownloadHistory(ctx *fasthttp.RequestCtx) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	blob, err := h.borrowService.ExportHistoryCSV(ctx, user.ID)
	if err != nil {
		utils.LogError("BorrowHandler", "Ошибка выгрузки истории", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка выгрузки истории")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"csv": blob})
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/services"
	"library-backend/internal/utils"
)

type AdminHandler struct {
	userService   *services.UserService
	borrowService *services.BorrowService
}

func NewAdminHandler(userService *services.UserService, borrowService *services.BorrowService) *AdminHandler {
	utils.LogSuccess("AdminHandler", "Инициализирован обработчик администратора")
	return &AdminHandler{
		userService:   userService,
		borrowService: borrowService,
	}
}

// CreateUser обрабатывает POST /admin/users — создание пользователя.
func (h *AdminHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	admin, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req models.CreateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AdminHandler", "Ошибка парсинга JSON", err)
		writeError(ctx, fasthttp.StatusBadRequest, "Неверный формат данных")
		return
	}

	utils.LogInfo("AdminHandler", "Администратор %s создаёт пользователя %s", admin.Email, req.Email)

	user, err := h.userService.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) ||
			errors.Is(err, services.ErrShortPassword) ||
			errors.Is(err, services.ErrUserExists) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		} else {
			writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка создания пользователя")
		}
		utils.LogError("AdminHandler", "Ошибка создания пользователя", err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message": "Пользователь успешно создан",
		"user_id": user.ID,
	})
}

// ListRequests обрабатывает GET /admin/requests — все заявки с названиями книг.
func (h *AdminHandler) ListRequests(ctx *fasthttp.RequestCtx) {
	if _, ok := currentUser(ctx); !ok {
		return
	}

	requests, err := h.borrowService.ListAll(ctx)
	if err != nil {
		utils.LogError("AdminHandler", "Ошибка получения списка заявок", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, requests)
}

// DecideRequest обрабатывает POST /admin/requests/{id}?action=approve|deny.
func (h *AdminHandler) DecideRequest(ctx *fasthttp.RequestCtx) {
	admin, ok := currentUser(ctx)
	if !ok {
		return
	}

	requestID, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Некорректный идентификатор заявки")
		return
	}

	action := string(ctx.QueryArgs().Peek("action"))
	utils.LogInfo("AdminHandler", "Администратор %s выполняет %q над заявкой %d", admin.Email, action, requestID)

	if err := h.borrowService.Decide(ctx, requestID, action); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "Заявка не найдена")
		} else if errors.Is(err, repository.ErrBookNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "Книга не найдена")
		} else if errors.Is(err, services.ErrInvalidAction) {
			writeError(ctx, fasthttp.StatusBadRequest, "Недопустимое действие")
		} else if errors.Is(err, repository.ErrAlreadyProcessed) {
			writeError(ctx, fasthttp.StatusBadRequest, "Заявка уже обработана")
		} else if errors.Is(err, repository.ErrPeriodTaken) {
			writeError(ctx, fasthttp.StatusBadRequest, "Книга уже выдана на этот период")
		} else {
			writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка обработки заявки")
		}
		utils.LogError("AdminHandler", fmt.Sprintf("Ошибка действия %q над заявкой %d", action, requestID), err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]string{
		"message": fmt.Sprintf("Заявка %d: действие %q выполнено", requestID, action),
	})
}

// UserHistory обрабатывает GET /admin/users/{id}/history.
func (h *AdminHandler) UserHistory(ctx *fasthttp.RequestCtx) {
	if _, ok := currentUser(ctx); !ok {
		return
	}

	userID, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	history, err := h.borrowService.UserHistory(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "Пользователь не найден")
		} else {
			writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка получения истории")
		}
		utils.LogError("AdminHandler", fmt.Sprintf("Ошибка получения истории пользователя %d", userID), err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, history)
}

func pathID(ctx *fasthttp.RequestCtx, name string) (int64, error) {
	raw, ok := ctx.UserValue(name).(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(raw, 10, 64)
}

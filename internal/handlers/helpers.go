package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"library-backend/internal/middleware"
	"library-backend/internal/models"
	"library-backend/internal/utils"
)

// currentUser достаёт аутентифицированного пользователя из контекста.
// Отсутствие значения означает ошибку порядка middleware.
func currentUser(ctx *fasthttp.RequestCtx) (*models.User, bool) {
	user, ok := ctx.UserValue(middleware.UserKey).(*models.User)
	if !ok {
		utils.LogError("Handlers", "Пользователь не найден в контексте", nil)
		middleware.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body interface{}) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(body)
}

func writeError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	writeJSON(ctx, statusCode, map[string]string{"error": message})
}

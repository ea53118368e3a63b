package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"library-backend/internal/models"
	"library-backend/internal/utils"
)

// WithLogging логирует запрос и ответ с коротким корреляционным идентификатором.
func WithLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()
		requestID := uuid.New().String()[:8]

		next(ctx)

		user := "anonymous"
		if u, ok := ctx.UserValue(UserKey).(*models.User); ok {
			user = u.Email
		}

		path := string(ctx.Path())
		utils.LogRequest(requestID, string(ctx.Method()), path, user)
		utils.LogResponse(requestID, path, ctx.Response.StatusCode(), time.Since(startTime))
	}
}

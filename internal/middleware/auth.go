package middleware

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"

	"library-backend/internal/models"
	"library-backend/internal/services"
	"library-backend/internal/utils"
)

// UserKey — ключ аутентифицированного пользователя в контексте запроса.
const UserKey = "user"

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	utils.LogSuccess("Middleware", "Инициализирован middleware авторизации")
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireUser проверяет Basic-учётные данные на каждом запросе.
// Сессий и токенов нет: неверные данные всегда дают 401 с
// WWW-Authenticate, чтобы клиент запросил их заново.
func (m *AuthMiddleware) RequireUser(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		authHeader := string(ctx.Request.Header.Peek("Authorization"))

		email, password, ok := parseBasicAuth(authHeader)
		if !ok {
			utils.LogWarning("Middleware", "Отсутствует или некорректен заголовок Authorization")
			Unauthorized(ctx)
			return
		}

		user, err := m.authService.Verify(ctx, email, password)
		if err != nil {
			utils.LogWarning("Middleware", "Ошибка аутентификации %s: %v", email, err)
			Unauthorized(ctx)
			return
		}

		ctx.SetUserValue(UserKey, user)
		utils.LogDebug("Middleware", "Аутентифицирован пользователь: %s (ID: %d)", user.Email, user.ID)

		next(ctx)
	}
}

// RequireAdmin — RequireUser плюс проверка признака администратора.
func (m *AuthMiddleware) RequireAdmin(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return m.RequireUser(func(ctx *fasthttp.RequestCtx) {
		user, ok := ctx.UserValue(UserKey).(*models.User)
		if !ok || !user.IsAdmin {
			if ok {
				utils.LogWarning("Middleware", "Отказ в доступе: пользователь %s не администратор", user.Email)
			}
			ctx.SetStatusCode(fasthttp.StatusForbidden)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{
				"error": "Доступ запрещён",
			})
			return
		}

		next(ctx)
	})
}

// parseBasicAuth разбирает заголовок "Basic base64(email:password)".
func parseBasicAuth(header string) (email, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return "", "", false
	}

	return credentials[0], credentials[1], true
}

// Unauthorized пишет стандартный ответ 401 с заголовком WWW-Authenticate.
// Используется и здесь, и в обработчиках как единая форма отказа.
func Unauthorized(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.Response.Header.Set("WWW-Authenticate", `Basic realm="library"`)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]string{
		"error": "Неверный email или пароль",
	})
}

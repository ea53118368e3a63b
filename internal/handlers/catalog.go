package handlers

import (
	"github.com/valyala/fasthttp"

	"library-backend/internal/models"
	"library-backend/internal/services"
	"library-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListBooks обрабатывает GET /books — каталог для любого пользователя.
func (h *CatalogHandler) ListBooks(ctx *fasthttp.RequestCtx) {
	if _, ok := currentUser(ctx); !ok {
		return
	}

	books, err := h.catalogService.ListBooks(ctx)
	if err != nil {
		utils.LogError("CatalogHandler", "Ошибка получения каталога", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Ошибка получения каталога")
		return
	}

	if books == nil {
		books = []models.Book{}
	}

	writeJSON(ctx, fasthttp.StatusOK, books)
}

package services

import (
	"context"

	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"
)

type CatalogService struct {
	bookRepo *repository.BookRepository
}

func NewCatalogService(bookRepo *repository.BookRepository) *CatalogService {
	return &CatalogService{bookRepo: bookRepo}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		utils.LogError("CatalogService", "Ошибка получения каталога", err)
		return nil, err
	}

	utils.LogSuccess("CatalogService", "Каталог получен: %d книг", len(books))
	return books, nil
}

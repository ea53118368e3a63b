// Команда seed наполняет базу стартовыми данными: администратором и
// статичным каталогом книг. Повторный запуск ничего не дублирует.
package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/config"
)

type seedBook struct {
	title  string
	author string
	copies int
}

var catalog = []seedBook{
	{"Мастер и Маргарита", "Михаил Булгаков", 3},
	{"Преступление и наказание", "Фёдор Достоевский", 2},
	{"Война и мир", "Лев Толстой", 1},
	{"Евгений Онегин", "Александр Пушкин", 2},
	{"Собачье сердце", "Михаил Булгаков", 1},
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	adminEmail := getEnv("ADMIN_EMAIL", "admin@library.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123")

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, password, is_admin) VALUES ($1, $2, TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		adminEmail, adminPassword,
	)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Printf("Admin user ready: %s", adminEmail)

	for _, book := range catalog {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM books WHERE title = $1 AND author = $2)",
			book.title, book.author,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("Failed to check book %q: %v", book.title, err)
		}
		if exists {
			continue
		}

		_, err = pool.Exec(ctx,
			"INSERT INTO books (title, author, copies_available) VALUES ($1, $2, $3)",
			book.title, book.author, book.copies,
		)
		if err != nil {
			log.Fatalf("Failed to seed book %q: %v", book.title, err)
		}
		log.Printf("Seeded book: %s — %s (%d copies)", book.author, book.title, book.copies)
	}

	log.Println("Seeding complete")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Package testutil содержит помощники для интеграционных тестов с Postgres.
// Тесты пропускаются, если LIBRARY_TEST_DB_URL не задан.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const testDBEnv = "LIBRARY_TEST_DB_URL"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS books (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    copies_available INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS borrow_requests (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users (id),
    book_id BIGINT NOT NULL REFERENCES books (id),
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    status TEXT NOT NULL DEFAULT 'Pending'
);
`

// MustOpenTestPool подключается к тестовой базе, создаёт схему и очищает
// таблицы. Без LIBRARY_TEST_DB_URL тест пропускается.
func MustOpenTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(testDBEnv)
	if url == "" {
		t.Skipf("%s is not set, skipping integration test", testDBEnv)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, schemaDDL)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "TRUNCATE borrow_requests, books, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return pool
}

// InsertBook вставляет книгу и возвращает её id.
func InsertBook(t *testing.T, pool *pgxpool.Pool, title, author string, copies int) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO books (title, author, copies_available) VALUES ($1, $2, $3) RETURNING id",
		title, author, copies,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// InsertUser вставляет пользователя и возвращает его id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, email, password string, isAdmin bool) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO users (email, password, is_admin) VALUES ($1, $2, $3) RETURNING id",
		email, password, isAdmin,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

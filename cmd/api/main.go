package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/valyala/fasthttp"

	"library-backend/internal/config"
	"library-backend/internal/handlers"
	"library-backend/internal/middleware"
	"library-backend/internal/repository"
	"library-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	runMigrations(pool, cfg.MigrationsDir)

	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(bookRepo)
	borrowService := services.NewBorrowService(requestRepo, userRepo)

	adminHandler := handlers.NewAdminHandler(userService, borrowService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	borrowHandler := handlers.NewBorrowHandler(borrowService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := router.New()
	r.GET("/health", healthHandler)

	r.POST("/admin/users", authMiddleware.RequireAdmin(adminHandler.CreateUser))
	r.GET("/admin/requests", authMiddleware.RequireAdmin(adminHandler.ListRequests))
	r.POST("/admin/requests/{id}", authMiddleware.RequireAdmin(adminHandler.DecideRequest))
	r.GET("/admin/users/{id}/history", authMiddleware.RequireAdmin(adminHandler.UserHistory))

	r.GET("/books", authMiddleware.RequireUser(catalogHandler.ListBooks))
	r.POST("/requests", authMiddleware.RequireUser(borrowHandler.Submit))
	r.GET("/history", authMiddleware.RequireUser(borrowHandler.History))
	r.GET("/download-history", authMiddleware.RequireUser(borrowHandler.DownloadHistory))

	server := &fasthttp.Server{
		Handler: middleware.WithLogging(r.Handler),
		Name:    "library-backend",
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(":" + cfg.Port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func runMigrations(pool *pgxpool.Pool, migrationsDir string) {
	dbForMigrate := stdlib.OpenDBFromPool(pool)
	defer dbForMigrate.Close()

	driver, err := migratepg.WithInstance(dbForMigrate, &migratepg.Config{})
	if err != nil {
		log.Fatalf("Migration driver failed: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		log.Fatalf("Migration failed to start: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied successfully")
}

func healthHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"status":"ok","message":"Library backend is running!","time":"` +
		time.Now().Format(time.RFC3339) + `"}`)
}

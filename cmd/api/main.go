package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aaacapital/site-api/internal/infra/auth"
	"github.com/aaacapital/site-api/internal/infra/cache"
	"github.com/aaacapital/site-api/internal/infra/database"
	"github.com/aaacapital/site-api/internal/infra/http/handlers"
	"github.com/aaacapital/site-api/internal/infra/http/middleware"
	"github.com/aaacapital/site-api/internal/infra/mail"
	"github.com/aaacapital/site-api/internal/infra/queue"
	"github.com/aaacapital/site-api/internal/infra/storage/cloudinary"
	"github.com/aaacapital/site-api/internal/infra/worker"
	"github.com/aaacapital/site-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(mustGetenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(mustGetenv("RABBITMQ_URL"))
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	resourceRepo := database.NewResourceRepository(db)
	tokenRepo := database.NewTokenRepository(db)
	downloadLogRepo := database.NewDownloadLogRepository(db)
	postRepo := database.NewPostRepository(db)
	teamRepo := database.NewTeamRepository(db)
	galleryRepo := database.NewGalleryRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// Collaborators
	storage := cloudinary.NewClient(
		mustGetenv("CLOUDINARY_CLOUD_NAME"),
		mustGetenv("CLOUDINARY_API_KEY"),
		mustGetenv("CLOUDINARY_API_SECRET"),
	)
	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort(), os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"), os.Getenv("ADMIN_NOTIFICATION_EMAIL"),
	)
	viewCache := cache.NewViewCache(cache.DefaultTTL)
	sessions := auth.NewSessionManager(
		mustGetenv("SESSION_SECRET"),
		mustGetenv("ADMIN_PASSWORD_HASH"),
		mustGetenv("ADMIN_EMAIL_ALLOWLIST"),
	)

	// Background workers
	queueWorker := queue.NewWorker(rabbitMQ.Ch, viewCache, mailSender)
	go queueWorker.Start()

	sweeper := worker.NewTokenSweeper(tokenRepo)
	go sweeper.Start(context.Background())

	// UseCases
	captureLeadUC := usecase.NewCaptureLeadUseCase(leadRepo, resourceRepo, tokenRepo)
	downloadUC := usecase.NewDownloadResourceUseCase(tokenRepo, resourceRepo, downloadLogRepo, storage)
	contactUC := usecase.NewSubmitContactUseCase(leadRepo, producer)

	// Handlers
	resourceHandler := handlers.NewResourceHandler(captureLeadUC, downloadUC)
	contactHandler := handlers.NewContactHandler(contactUC)
	publicHandler := handlers.NewPublicHandler(teamRepo, galleryRepo, postRepo, resourceRepo, settingsRepo, viewCache)
	authHandler := handlers.NewAuthHandler(sessions, os.Getenv("ENV") == "production")
	uploadHandler := handlers.NewUploadHandler(storage)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	adminResources := handlers.NewAdminResourceHandler(resourceRepo, producer)
	adminPosts := handlers.NewAdminPostHandler(postRepo, producer)
	adminTeam := handlers.NewAdminTeamHandler(teamRepo, producer)
	adminGallery := handlers.NewAdminGalleryHandler(galleryRepo, producer)
	adminSettings := handlers.NewAdminSettingsHandler(settingsRepo, producer)
	adminLeads := handlers.NewAdminLeadHandler(leadRepo, downloadLogRepo)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{os.Getenv("SITE_ORIGIN"), "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Gated download flow
	r.Post("/resource/{slug}/lead", resourceHandler.HandleLead)
	r.Get("/resource/{slug}/download", resourceHandler.HandleDownload)

	r.Post("/contact", contactHandler.Handle)

	// Public content
	r.Route("/api", func(r chi.Router) {
		r.Get("/team", publicHandler.HandleTeam)
		r.Get("/gallery", publicHandler.HandleGallery)
		r.Get("/posts", publicHandler.HandlePosts)
		r.Get("/posts/{slug}", publicHandler.HandlePost)
		r.Get("/resources", publicHandler.HandleResources)
		r.Get("/settings", publicHandler.HandleSettings)
	})

	r.Post("/auth/login", authHandler.HandleLogin)
	r.Post("/auth/logout", authHandler.HandleLogout)

	// Admin area
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminOnly(sessions))

		r.Get("/resources", adminResources.HandleList)
		r.Post("/resources", adminResources.HandleCreate)
		r.Put("/resources/{id}", adminResources.HandleUpdate)
		r.Delete("/resources/{id}", adminResources.HandleDelete)

		r.Get("/posts", adminPosts.HandleList)
		r.Post("/posts", adminPosts.HandleCreate)
		r.Put("/posts/{id}", adminPosts.HandleUpdate)
		r.Delete("/posts/{id}", adminPosts.HandleDelete)

		r.Get("/team", adminTeam.HandleList)
		r.Post("/team", adminTeam.HandleCreate)
		r.Put("/team/{id}", adminTeam.HandleUpdate)
		r.Delete("/team/{id}", adminTeam.HandleDelete)

		r.Get("/gallery", adminGallery.HandleList)
		r.Post("/gallery", adminGallery.HandleCreate)
		r.Put("/gallery/{id}", adminGallery.HandleUpdate)
		r.Delete("/gallery/{id}", adminGallery.HandleDelete)

		r.Get("/settings", adminSettings.HandleGet)
		r.Put("/settings", adminSettings.HandleUpdate)

		r.Get("/leads", adminLeads.HandleListLeads)
		r.Get("/downloads", adminLeads.HandleListDownloads)

		r.Post("/uploads/signature", uploadHandler.HandleSign)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("site-api listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func mustGetenv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required env var %s", key)
	}
	return v
}

func mailPort() int {
	if p, err := strconv.Atoi(os.Getenv("MAIL_PORT")); err == nil {
		return p
	}
	return 587
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/config"
	"github.com/cineconnect/cineconnect-api/internal/domain/auth"
	"github.com/cineconnect/cineconnect-api/internal/domain/chat"
	"github.com/cineconnect/cineconnect-api/internal/domain/feed"
	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/domain/group"
	"github.com/cineconnect/cineconnect-api/internal/domain/moderation"
	"github.com/cineconnect/cineconnect-api/internal/domain/notification"
	"github.com/cineconnect/cineconnect-api/internal/domain/profile"
	"github.com/cineconnect/cineconnect-api/internal/domain/review"
	"github.com/cineconnect/cineconnect-api/internal/domain/social"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/database"
	"github.com/cineconnect/cineconnect-api/internal/pkg/jwt"
	"github.com/cineconnect/cineconnect-api/internal/pkg/logger"
	pkgresponse "github.com/cineconnect/cineconnect-api/internal/pkg/response"
	"github.com/cineconnect/cineconnect-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting CineConnect API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := storage.NewS3Storage(storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		AccessKeySecret: cfg.S3AccessKeySecret,
		Bucket:          cfg.S3BucketName,
		PublicURL:       cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create S3 storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	filmRepo := film.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	socialRepo := social.NewRepository(db)
	groupRepo := group.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	feedRepo := feed.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := chat.NewHub(redis)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis)
	filmService := film.NewService(filmRepo)
	reviewService := review.NewService(db, reviewRepo, filmService, filmRepo)
	socialService := social.NewService(socialRepo, userRepo)
	notificationService := notification.NewService(notificationRepo)
	groupService := group.NewService(groupRepo, userRepo, filmService, notificationService)
	chatService := chat.NewService(chatRepo, groupService, hub)
	moderationService := moderation.NewService(moderationRepo, reviewService, chatService, userRepo)
	profileService := profile.NewService(profileRepo, userRepo, reviewService, groupService, socialService, filmService, store)
	feedService := feed.NewService(feedRepo, filmService)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService, cfg.IsDevelopment())
	filmHandler := film.NewHandler(filmService, &filmReviewAdapter{reviews: reviewService})
	reviewHandler := review.NewHandler(reviewService)
	socialHandler := social.NewHandler(socialService)
	groupHandler := group.NewHandler(groupService)
	chatHandler := chat.NewHandler(chatService, hub, redis, cfg.ChatMessagesPerMinute, cfg.AllowedOrigins)
	notificationHandler := notification.NewHandler(notificationService)
	moderationHandler := moderation.NewHandler(moderationService)
	profileHandler := profile.NewHandler(profileService)
	feedHandler := feed.NewHandler(feedService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket handshake authenticates via the token query parameter
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(chatHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/movies", filmHandler.Routes(authMiddleware))
		r.Mount("/reviews", reviewHandler.Routes(authMiddleware))
		r.Mount("/replies", reviewHandler.ReplyRoutes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
		r.Mount("/moderation", moderationHandler.Routes(authMiddleware))
		r.Mount("/feed", feedHandler.Routes(authMiddleware))

		groupRouter := groupHandler.Routes(authMiddleware)
		chatHandler.RegisterMessageRoutes(groupRouter, authMiddleware)
		r.Mount("/groups", groupRouter)

		usersRouter := socialHandler.Routes(authMiddleware)
		profileHandler.RegisterRoutes(usersRouter, authMiddleware)
		r.Mount("/users", usersRouter)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// filmReviewAdapter projects the review domain into the previews the film
// details endpoint embeds.
type filmReviewAdapter struct {
	reviews *review.Service
}

func (a *filmReviewAdapter) FilmReviews(ctx context.Context, filmID uuid.UUID) ([]film.ReviewPreview, error) {
	reviews, err := a.reviews.ListByFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}

	out := make([]film.ReviewPreview, 0, len(reviews))
	for _, rev := range reviews {
		p := film.ReviewPreview{
			ID:        rev.ID,
			AuthorID:  rev.UserID,
			Author:    rev.AuthorPseudo,
			Rating:    rev.Rating,
			LikeCount: rev.LikeCount,
			CreatedAt: rev.CreatedAt,
		}
		if rev.AuthorPhotoURL.Valid {
			p.AuthorURL = &rev.AuthorPhotoURL.String
		}
		if rev.Comment.Valid {
			p.Comment = &rev.Comment.String
		}

		replies, err := a.reviews.ListReplies(ctx, rev.ID)
		if err != nil {
			return nil, err
		}
		p.Replies = make([]film.ReplyPreview, 0, len(replies))
		for _, reply := range replies {
			p.Replies = append(p.Replies, film.ReplyPreview{
				ID:        reply.ID,
				AuthorID:  reply.UserID,
				Author:    reply.AuthorPseudo,
				Message:   reply.Message,
				CreatedAt: reply.CreatedAt,
			})
		}

		out = append(out, p)
	}
	return out, nil
}

package router

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"nutrigenius/internal/api/v1/handler"
	"nutrigenius/internal/config"
	"nutrigenius/internal/middleware"
	"nutrigenius/internal/repository"
	"nutrigenius/internal/service"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")

	// Open DB connection (connection pooling). In development we disable SSL
	// for local testing; production connection strings carry their own SSL
	// settings.
	dsn := cfg.DBConnectionString
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Msgf("Failed to open DB connection: %v", err)
		return nil, nil, err
	}

	if err := db.Ping(); err != nil {
		logger.Error().Msgf("Failed to ping DB: %v", err)
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	validate := validator.New(validator.WithRequiredStructEnabled())

	aiClient := service.NewChatClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)

	// Repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	dailyLogRepo := repository.NewDailyLogRepo(db)
	mealRepo := repository.NewMealSuggestionRepo(db)
	feedbackRepo := repository.NewMealFeedbackRepo(db)
	insightRepo := repository.NewNutritionInsightRepo(db)
	paymentRepo := repository.NewPaymentLogRepo(db)

	userSvc := service.NewUserService(userRepo, logger)
	mealSvc := service.NewMealService(aiClient, mealRepo, logger)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, logger)
	nutritionSvc := service.NewNutritionService(dailyLogRepo, logger)
	insightSvc := service.NewInsightService(aiClient, insightRepo, logger)
	stripeSvc := service.NewStripeService(cfg, userRepo, paymentRepo, logger)

	authHandler := handler.NewAuthHandler(userSvc, validate, logger)
	mealHandler := handler.NewMealHandler(mealSvc, feedbackSvc, validate, logger)
	nutritionHandler := handler.NewNutritionHandler(nutritionSvc, insightSvc, validate, logger)
	subscriptionHandler := handler.NewSubscriptionHandler(stripeSvc, validate, logger)

	mux := http.NewServeMux()

	// Subrouter for API v1, mounted under /api
	apiMux := http.NewServeMux()
	authHandler.RegisterRoutes(apiMux)
	mealHandler.RegisterRoutes(apiMux)
	nutritionHandler.RegisterRoutes(apiMux)
	subscriptionHandler.RegisterRoutes(apiMux)

	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), db, nil
}

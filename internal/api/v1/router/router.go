package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pgmq"
	"app/internal/plan"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/storage"
	"app/internal/vies"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	// 1. Open DB connection (connection pooling)
	dsn := cfg.DatabaseURL
	// Local development runs against a plain postgres container without
	// TLS; production connection strings carry their own sslmode.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection")
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Initialize S3 client for invoice documents
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load S3 config")
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})
	docStore := storage.NewS3Store(s3Client, cfg.S3Bucket, cfg.S3URL)

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize Pub/Sub publisher for invoice events
	publisher, err := pubsub.NewPublisher(context.Background(), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
		return nil, nil, err
	}

	// 5. Plan catalog and VIES validator
	catalog := plan.NewCatalog()
	viesClient := vies.NewClient(cfg.VIESServiceURL, time.Duration(cfg.VIESTimeoutSec)*time.Second, logger)
	viesValidator := vies.NewValidator(viesClient, vies.NewHeuristicParser(), logger)

	// 6. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	subRepo := repository.NewSubscriptionRepo(db)
	usageRepo := repository.NewUsageRepo(db)
	contactRepo := repository.NewContactRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	productRepo := repository.NewProductRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	calendarRepo := repository.NewCalendarRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	userSvc := service.NewUserService(cfg, userRepo, subRepo, logger)
	planSvc := service.NewPlanService(catalog, subRepo, userRepo, usageRepo, logger)
	contactSvc := service.NewContactService(catalog, contactRepo, usageRepo, planSvc, logger)
	accountSvc := service.NewAccountService(catalog, accountRepo, usageRepo, planSvc, viesValidator, logger)
	productSvc := service.NewProductService(productRepo, logger)
	deliveryQueue := pgmq.New(db)
	invoiceSvc := service.NewInvoiceService(catalog, invoiceRepo, accountRepo, productRepo, usageRepo, userRepo, planSvc, docStore, publisher, deliveryQueue, logger)
	calendarSvc := service.NewCalendarService(calendarRepo, logger)
	dashboardSvc := service.NewDashboardService(statsRepo, logger)
	stripeSvc := service.NewStripeService(cfg, userRepo, subRepo, planSvc, logger)

	authHandler := handler.NewAuthHandler(userSvc, validate)
	userHandler := handler.NewUserHandler(userSvc, planSvc, validate)
	contactHandler := handler.NewContactHandler(contactSvc, validate)
	accountHandler := handler.NewAccountHandler(accountSvc, validate)
	productHandler := handler.NewProductHandler(productSvc, validate)
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc, validate)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, validate)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(stripeSvc, validate)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 8. Create ServeMux router
	mux := http.NewServeMux()
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	contactHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	accountHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	productHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	invoiceHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	calendarHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	dashboardHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	subscriptionHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux), logger), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}

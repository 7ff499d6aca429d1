package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"communityaid/internal/adapter/repo"
	"communityaid/internal/http/handlers"
	httpapi "communityaid/internal/http/httpapi"
	"communityaid/internal/infra"
	"communityaid/internal/infra/credentials"
	"communityaid/internal/payment"
	"communityaid/internal/policy"
	"communityaid/internal/providers/mpesa"
	"communityaid/internal/resource"
	"communityaid/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sql := infra.NewSQLRunner(dbpool, logger)
	migrateCtx, cancelMigrate := context.WithTimeout(ctx, 30*time.Second)
	if err := infra.Migrate(migrateCtx, sql); err != nil {
		cancelMigrate()
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}
	cancelMigrate()

	apiKey, err := credentials.NewStore(sql).ResolveMpesaAPIKey(ctx, cfg.MpesaAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("mpesa api key lookup failed")
	}
	if apiKey == "" {
		logger.Warn().Msg("mpesa api key not configured; STK push requests will fail")
	}
	gateway, err := mpesa.NewClient(mpesa.Options{
		APIKey:         apiKey,
		BaseURL:        cfg.MpesaBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.MpesaTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build mpesa client")
	}

	media, err := storage.NewFileStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare media directory")
	}

	metrics := infra.NewMetrics()

	projects := repo.NewProjectRepository(sql)
	donations := repo.NewDonationRepository(sql)
	beneficiaries := repo.NewBeneficiaryRepository(sql, sql)
	volunteers := repo.NewVolunteerRepository(sql, sql)
	users := repo.NewUserRepository(sql)

	app := &handlers.App{
		Projects:             resource.NewProjects(projects, logger),
		Donations:            resource.NewDonations(donations, projects, logger),
		Beneficiaries:        resource.NewBeneficiaries(beneficiaries, projects, logger),
		Volunteers:           resource.NewVolunteers(volunteers, projects, logger),
		UserAccounts:         resource.NewUsers(users, logger),
		BeneficiaryApprovals: resource.NewApprover(policy.KindBeneficiary, beneficiaries, logger, resource.StateApproved),
		VolunteerApprovals:   resource.NewApprover(policy.KindVolunteer, volunteers, logger, resource.StateApproved, resource.StateRejected),
		Users:                users,
		Payments:             payment.NewInitiator(projects, donations, gateway, metrics, logger),
		Media:                media,
		DB:                   dbpool,
		Logger:               logger,
		JWTSecret:            cfg.JWTSecret,
		TokenTTL:             cfg.TokenTTL,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Metrics:         metrics,
		Media:           media.Handler(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

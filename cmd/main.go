package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/amsys-2025.net/internal/adapter/crypto"
	"gitlab.com/amsys-2025.net/internal/adapter/postgres"
	"gitlab.com/amsys-2025.net/internal/adapter/postgres/assignmentrepository"
	"gitlab.com/amsys-2025.net/internal/adapter/postgres/grouprepository"
	"gitlab.com/amsys-2025.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/amsys-2025.net/internal/adapter/postgres/userrepository"
	"gitlab.com/amsys-2025.net/internal/adapter/redis/tokenstore"
	"gitlab.com/amsys-2025.net/internal/config"
	"gitlab.com/amsys-2025.net/internal/core/services/analytics"
	assignment2 "gitlab.com/amsys-2025.net/internal/core/services/assignment"
	auth2 "gitlab.com/amsys-2025.net/internal/core/services/auth"
	group2 "gitlab.com/amsys-2025.net/internal/core/services/group"
	submission2 "gitlab.com/amsys-2025.net/internal/core/services/submission"
	user2 "gitlab.com/amsys-2025.net/internal/core/services/user"
	logger2 "gitlab.com/amsys-2025.net/internal/global/logger"
	http2 "gitlab.com/amsys-2025.net/internal/http"
)

func main() {
	InitReader()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting assignment management service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err = postgres.EnsureSchema(context.Background(), db, sysCfg.PostgresConfig.Schema); err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	userPort := userrepository.New(db, logger, schema)
	assignmentPort := assignmentrepository.New(db, logger, schema)
	groupPort := grouprepository.New(db, logger, schema)
	submissionPort := submissionrepository.New(db, logger, schema)
	tokenStore := tokenstore.NewTokenStore(redisClient, logger)

	// PRIMARY PORTS
	tokenService := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	localAuth := auth2.NewLocalAuthService(userPort, tokenService, logger)
	ggAuth := auth2.NewGoogleAuthService(userPort, tokenService, logger)
	userSvc := user2.NewUserService(userPort, logger)
	assignmentSvc := assignment2.NewAssignmentService(assignmentPort, submissionPort, logger)
	groupSvc := group2.NewGroupService(groupPort, userPort, logger)
	submissionSvc := submission2.NewSubmissionService(submissionPort, assignmentPort, groupPort, logger)
	analyticsSvc := analytics.NewAnalyticsService(assignmentPort, submissionPort, logger)

	serviceProvider := http2.NewServiceProvider(
		localAuth, ggAuth,
		userSvc, assignmentSvc, groupSvc, submissionSvc, analyticsSvc,
		tokenService, tokenStore,
	)

	// server
	httpServer := http2.NewServer(sysCfg.ServerConfig, sysCfg.GGAuthConfig, *serviceProvider, logger)
	if err = httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"parcelmatch/cmd"
	"parcelmatch/internal/adapters/in/ws"
	"parcelmatch/internal/adapters/out/natspub"
	"parcelmatch/internal/adapters/out/postgres/accountrepo"
	"parcelmatch/internal/adapters/out/postgres/bidrepo"
	"parcelmatch/internal/adapters/out/postgres/notificationrepo"
	"parcelmatch/internal/adapters/out/postgres/parcelrepo"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	gormDB := mustConnectDB(configs)

	publisher, err := natspub.NewJetStreamPublisher(jetStreamConfig(configs))
	if err != nil {
		log.Fatalf("Error connecting to NATS: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectionManager := ws.NewConnectionManager(ws.DefaultConnectionConfig(), app.CreateActionRouter())
	go connectionManager.Start(ctx)

	consumer, err := ws.NewEventConsumer(connectionManager, consumerConfig(configs))
	if err != nil {
		log.Fatalf("Error creating event consumer: %v", err)
	}
	defer consumer.Close()
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Errorf("Event consumer stopped: %v", err)
		}
	}()

	startWebServer(&app, connectionManager, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		NatsURL:    goDotEnvVariable("NATS_URL"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// mustConnectDB opens the database through lib/pq so the repositories can
// classify unique-violation errors, then wraps the connection in GORM.
func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&bidrepo.BidDTO{},
		&accountrepo.ProfileDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func jetStreamConfig(configs cmd.Config) natspub.JetStreamConfig {
	cfg := natspub.DefaultJetStreamConfig()
	if configs.NatsURL != "" {
		cfg.URL = configs.NatsURL
	}
	return cfg
}

func consumerConfig(configs cmd.Config) ws.JetStreamConsumerConfig {
	cfg := ws.DefaultJetStreamConsumerConfig()
	if configs.NatsURL != "" {
		cfg.URL = configs.NatsURL
	}
	return cfg
}

func startWebServer(app *cmd.CompositionRoot, connectionManager *ws.ConnectionManager, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.GET("/ws", func(c echo.Context) error {
		userID, err := uuid.Parse(c.Request().Header.Get("X-User-ID"))
		if err != nil {
			return c.String(http.StatusBadRequest, "missing or malformed X-User-ID header")
		}
		return connectionManager.UpgradeConnection(c.Response(), c.Request(), userID)
	})

	server := app.CreateServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

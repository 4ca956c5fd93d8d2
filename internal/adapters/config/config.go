package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/academic-events/eventhub/internal/adapters/controller/scheduler"
	"github.com/academic-events/eventhub/internal/adapters/database/memory"
	postgresStorage "github.com/academic-events/eventhub/internal/adapters/database/postgres"
	redisStorage "github.com/academic-events/eventhub/internal/adapters/database/redis"
	"github.com/academic-events/eventhub/internal/adapters/database/storage"
	"github.com/academic-events/eventhub/internal/domain/service"
	"github.com/academic-events/eventhub/internal/domain/utils/location"
	"github.com/academic-events/eventhub/pkg/logger"
	qr "github.com/academic-events/eventhub/pkg/qrcode"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type SMTP struct {
	Dialer *gomail.Dialer
	From   string
	Domain string
}

type Config struct {
	Driver  string
	Profile string
	KV      storage.KV

	Database *gorm.DB
	Redis    *redisStorage.Storage

	// SMTP is nil when mail copies are disabled.
	SMTP *SMTP

	Manager          service.Config
	QR               qr.Config
	ReminderInterval time.Duration
}

func initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("EVENTHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
	}
}

func setDefaults() {
	defaults := service.DefaultConfig()
	viper.SetDefault("settings.timezone", "UTC")
	viper.SetDefault("storage.driver", DriverMemory)
	viper.SetDefault("storage.profile", "default")
	viper.SetDefault("service.redis.port", 6379)
	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.database.sslmode", "disable")
	viper.SetDefault("service.smtp.port", 587)
	viper.SetDefault("bootstrap.admin.id", defaults.Admin.ID)
	viper.SetDefault("bootstrap.admin.name", defaults.Admin.Name)
	viper.SetDefault("bootstrap.admin.email", defaults.Admin.Email)
	viper.SetDefault("bootstrap.admin.password", defaults.Admin.Password)
	viper.SetDefault("events.default-image", defaults.DefaultImage)
	viper.SetDefault("reminders.interval", scheduler.DefaultInterval)
	viper.SetDefault("certificates.qr-size", qr.Certificate.Size)
}

// Get loads the configuration, initializes the logger and connects the
// selected storage backend. It panics when any of it fails.
func Get() *Config {
	initConfig()

	if err := location.Set(viper.GetString("settings.timezone")); err != nil {
		panic(err)
	}

	profile := viper.GetString("storage.profile")
	err := logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
		Prefix:       viper.GetString("settings.log-prefix"),
	})
	if err != nil {
		panic(err)
	}

	cfg := &Config{
		Driver:  strings.ToLower(viper.GetString("storage.driver")),
		Profile: profile,
		Manager: service.Config{
			Admin: service.AdminAccount{
				ID:       viper.GetString("bootstrap.admin.id"),
				Name:     viper.GetString("bootstrap.admin.name"),
				Email:    viper.GetString("bootstrap.admin.email"),
				Password: viper.GetString("bootstrap.admin.password"),
			},
			DefaultImage: viper.GetString("events.default-image"),
			VerifyURL:    viper.GetString("certificates.verify-url"),
			Location:     location.Location(),
		},
		QR:               qr.Certificate,
		ReminderInterval: viper.GetDuration("reminders.interval"),
	}
	cfg.QR.Size = viper.GetInt("certificates.qr-size")

	switch cfg.Driver {
	case DriverMemory:
		cfg.KV = memory.NewStorage()
		logger.Log.Warnf("Using in-memory storage, profile %q is lost on exit", profile)
	case DriverRedis:
		cfg.Redis = connectRedis(profile)
		cfg.KV = cfg.Redis
	case DriverPostgres:
		cfg.Database = connectPostgres()
		kv := postgresStorage.NewKVStorage(cfg.Database, profile)
		if errMigrate := kv.Migrate(context.Background()); errMigrate != nil {
			logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
		}
		cfg.KV = kv
	default:
		logger.Log.Panicf("Unknown storage driver %q", cfg.Driver)
	}

	if host := viper.GetString("service.smtp.host"); host != "" {
		cfg.SMTP = &SMTP{
			Dialer: gomail.NewDialer(
				host,
				viper.GetInt("service.smtp.port"),
				viper.GetString("service.smtp.username"),
				viper.GetString("service.smtp.password"),
			),
			From:   viper.GetString("service.smtp.email"),
			Domain: viper.GetString("service.smtp.domain"),
		}
	}

	return cfg
}

func connectRedis(profile string) *redisStorage.Storage {
	redisDB, err := redisStorage.New(context.Background(), redisStorage.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetInt("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
		DB:       viper.GetInt("service.redis.db"),
		Profile:  profile,
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	}
	logger.Log.Info("Successfully connected to redis")
	return redisDB
}

func connectPostgres() *gorm.DB {
	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s TimeZone=%s",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
		location.Location().String(),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	}
	logger.Log.Info("Successfully connected to the database")
	return database
}

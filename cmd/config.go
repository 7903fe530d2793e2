package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultFulfilledCleanupSchedule = "0 0 3 * * *"
	defaultAbandonedCleanupSchedule = "0 0 * * * *"
	defaultAbandonedRetentionHours  = 48
	defaultCleanupConcurrency       = 4
	defaultCleanupTimeout           = 30 * time.Minute
	defaultServiceName              = "printflow"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CloudinaryURL string

	AWSBucketName      string
	AWSBucketRegion    string
	AWSBucketAccessKey string
	AWSBucketSecretKey string

	// GoogleDriveCredentialsFile enables Drive links as documents when set.
	GoogleDriveCredentialsFile string

	FulfilledCleanupSchedule string
	AbandonedCleanupSchedule string
	AbandonedRetention       time.Duration
	CleanupConcurrency       int
	CleanupTimeout           time.Duration

	OTelServiceName string
	OTelEnvironment string
	OTLPEndpoint    string
	OTLPInsecure    bool
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv, applying defaults to optional
// keys and rejecting missing required ones.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:   getenv("HTTP_PORT"),
		DBHost:     getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT"),
		DBUser:     getenv("DB_USER"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME"),
		DBSslMode:  withDefault(getenv("DB_SSLMODE"), "disable"),

		CloudinaryURL: getenv("CLOUDINARY_URL"),

		AWSBucketName:      getenv("AWS_BUCKET_NAME"),
		AWSBucketRegion:    getenv("AWS_BUCKET_REGION"),
		AWSBucketAccessKey: getenv("AWS_BUCKET_ACCESSKEY"),
		AWSBucketSecretKey: getenv("AWS_BUCKET_SECRET_KEY"),

		GoogleDriveCredentialsFile: getenv("GOOGLE_DRIVE_CREDENTIALS_FILE"),

		FulfilledCleanupSchedule: withDefault(getenv("FULFILLED_CLEANUP_SCHEDULE"), defaultFulfilledCleanupSchedule),
		AbandonedCleanupSchedule: withDefault(getenv("ABANDONED_CLEANUP_SCHEDULE"), defaultAbandonedCleanupSchedule),

		OTelServiceName: withDefault(getenv("OTEL_SERVICE_NAME"), defaultServiceName),
		OTelEnvironment: withDefault(getenv("OTEL_ENVIRONMENT"), "development"),
		OTLPEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var errList []error
	for key, value := range map[string]string{
		"HTTP_PORT":         cfg.HTTPPort,
		"DB_HOST":           cfg.DBHost,
		"DB_PORT":           cfg.DBPort,
		"DB_USER":           cfg.DBUser,
		"DB_PASSWORD":       cfg.DBPassword,
		"DB_NAME":           cfg.DBName,
		"CLOUDINARY_URL":    cfg.CloudinaryURL,
		"AWS_BUCKET_NAME":   cfg.AWSBucketName,
		"AWS_BUCKET_REGION": cfg.AWSBucketRegion,
	} {
		if value == "" {
			errList = append(errList, fmt.Errorf("%s is required", key))
		}
	}

	retentionHours, err := positiveInt(getenv, "ABANDONED_RETENTION_HOURS", defaultAbandonedRetentionHours)
	errList = append(errList, err)
	cfg.AbandonedRetention = time.Duration(retentionHours) * time.Hour

	cfg.CleanupConcurrency, err = positiveInt(getenv, "CLEANUP_CONCURRENCY", defaultCleanupConcurrency)
	errList = append(errList, err)

	cfg.CleanupTimeout = defaultCleanupTimeout
	if raw := getenv("CLEANUP_TIMEOUT"); raw != "" {
		cfg.CleanupTimeout, err = time.ParseDuration(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("CLEANUP_TIMEOUT: %w", err))
		}
	}

	if (cfg.AWSBucketAccessKey == "") != (cfg.AWSBucketSecretKey == "") {
		errList = append(errList, errors.New("AWS_BUCKET_ACCESSKEY and AWS_BUCKET_SECRET_KEY must be set together"))
	}

	if raw := getenv("OTEL_EXPORTER_OTLP_INSECURE"); raw != "" {
		cfg.OTLPInsecure, err = strconv.ParseBool(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("OTEL_EXPORTER_OTLP_INSECURE: %w", err))
		}
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func positiveInt(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	if n < 1 {
		return fallback, fmt.Errorf("%s must be greater than 0, got %d", key, n)
	}
	return n, nil
}

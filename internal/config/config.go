package config

import (
	"os"
	"strconv"
)

type S3Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	MirrorBucket    string
	MirrorPrefix    string
	PublicBucket    string
	PublicPrefix    string
}

type Config struct {
	Database struct {
		URL        string
		SQLitePath string
	}
	S3               S3Config
	PublishBatchSize int
	Port             string
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", "data/photomap.db")

	cfg.S3.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.S3.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.S3.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.S3.MirrorBucket = os.Getenv("R2_MIRROR_BUCKET")
	cfg.S3.MirrorPrefix = getEnv("R2_MIRROR_PREFIX", "points/")
	cfg.S3.PublicBucket = os.Getenv("R2_PUBLIC_BUCKET")
	cfg.S3.PublicPrefix = getEnv("R2_PUBLIC_PREFIX", "points/")

	cfg.PublishBatchSize = getEnvInt("PUBLISH_BATCH_SIZE", 400)
	cfg.Port = getEnv("PORT", "8080")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Values come from environment
// variables; a local .env file is loaded first if present.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTTTL         time.Duration // 0 means tokens never expire
	BcryptCost     int
	StorageTimeout time.Duration
	CORSOrigins    []string
	CloudinaryURL  string // optional, image uploads disabled when empty
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getenv("MONGODB_DB", "socialfeed"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		BcryptCost:     12,
		StorageTimeout: 5 * time.Second,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		cfg.BcryptCost = n
	}

	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid JWT_TTL %q: %w", v, err)
		}
		cfg.JWTTTL = d
	}

	if v := os.Getenv("STORAGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STORAGE_TIMEOUT %q: %w", v, err)
		}
		cfg.StorageTimeout = d
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

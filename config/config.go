package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every externally supplied setting. Values come from the
// environment (optionally via a .env file) with development defaults.
type Config struct {
	Port          string
	Environment   string
	CORSOrigin    string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	JWTSecret     string
	JWTExpiry     time.Duration
	SessionSecret string
	SessionMaxAge int
	UploadDir     string
	MaxUploadSize int64
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "4000"),
		Environment:   getenv("ENVIRONMENT", "development"),
		CORSOrigin:    getenv("CORS_ORIGIN", "http://localhost:5173"),
		DBUser:        getenv("DB_USER", "root"),
		DBPassword:    getenv("DB_PASSWORD", ""),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "3306"),
		DBName:        getenv("DB_NAME", "crudclinic"),
		JWTSecret:     getenv("JWT_SECRET", "crudclinic_jwt_secret"),
		JWTExpiry:     getenvDuration("JWT_EXPIRES_IN", 24*time.Hour),
		SessionSecret: getenv("SESSION_SECRET", "crudclinic_session_secret"),
		SessionMaxAge: getenvInt("SESSION_MAX_AGE", 24*60*60),
		UploadDir:     getenv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: getenvInt64("MAX_FILE_SIZE", 10<<20),
	}

	log.WithFields(log.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"db_host":     cfg.DBHost,
		"db_name":     cfg.DBName,
	}).Info("configuration loaded")

	return cfg
}

// DSN builds the MySQL connection string. parseTime makes DATE/DATETIME
// columns scan into time.Time.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// OpenDB opens the connection pool and verifies connectivity. The caller owns
// the handle and closes it at shutdown.
func OpenDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DBName, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database %s: %w", cfg.DBName, err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warnf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Warnf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warnf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}

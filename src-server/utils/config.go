package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	port string

	databasePath string

	adminTokenSecret string
	adminTokenExpire time.Duration

	backupDir           string
	backupRetentionDays int

	metricCollectionInterval time.Duration

	hostname string
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./tangocal.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),

		adminTokenSecret: func() string {
			secret := os.Getenv("ADMIN_TOKEN_SECRET")
			if secret == "" {
				slog.Warn("ADMIN_TOKEN_SECRET is not set")
				secret = "secret"
			}
			return secret
		}(),
		adminTokenExpire: func() time.Duration {
			adminTokenExpire := os.Getenv("ADMIN_TOKEN_EXPIRE")
			if adminTokenExpire == "" {
				adminTokenExpire = "168h" // 1 week
			}
			duration, err := time.ParseDuration(adminTokenExpire)
			if err != nil {
				slog.Error("invalid ADMIN_TOKEN_EXPIRE", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "ADMIN_TOKEN_EXPIRE", adminTokenExpire, "duration", duration)
			return duration
		}(),

		backupDir: func() string {
			backupDir := os.Getenv("BACKUP_DIR")
			if backupDir == "" {
				backupDir = "./backups"
			}
			slog.Debug("env", "BACKUP_DIR", backupDir)
			return filepath.Clean(backupDir)
		}(),
		backupRetentionDays: func() int {
			retention := os.Getenv("BACKUP_RETENTION_DAYS")
			if retention == "" {
				retention = "30"
			}
			days, err := strconv.Atoi(retention)
			if err != nil || days < 1 {
				slog.Error("invalid BACKUP_RETENTION_DAYS", "value", retention)
				os.Exit(1)
			}
			slog.Debug("env", "BACKUP_RETENTION_DAYS", days)
			return days
		}(),

		metricCollectionInterval: func() time.Duration {
			interval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if interval == "" {
				interval = "10m"
			}
			duration, err := time.ParseDuration(interval)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),

		hostname: func() string {
			hostname := os.Getenv("HOSTNAME")
			if hostname == "" {
				hostname = "localhost"
			}
			slog.Debug("env", "HOSTNAME", hostname)
			return hostname
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATABASE_PATH env
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get ADMIN_TOKEN_SECRET env
func (c *Config) GetAdminTokenSecret() string {
	return c.adminTokenSecret
}

// Get ADMIN_TOKEN_EXPIRE env
func (c *Config) GetAdminTokenExpire() time.Duration {
	return c.adminTokenExpire
}

// Get BACKUP_DIR env
func (c *Config) GetBackupDir() string {
	return c.backupDir
}

// Get BACKUP_RETENTION_DAYS env
func (c *Config) GetBackupRetentionDays() int {
	return c.backupRetentionDays
}

// Get METRIC_COLLECTION_INTERVAL env
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get HOSTNAME env
func (c *Config) GetHostname() string {
	return c.hostname
}

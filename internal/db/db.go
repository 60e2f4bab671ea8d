package db

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"product-order-service/internal/models"
)

// Open connects to the backend selected by the URL scheme: mysql://,
// postgres:// or sqlite://. A bare path is treated as a SQLite file.
func Open(databaseURL string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	switch {
	case strings.HasPrefix(databaseURL, "mysql://"):
		dsn, err := mysqlDSN(databaseURL)
		if err != nil {
			return nil, err
		}
		return gorm.Open(mysql.Open(dsn), cfg)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return gorm.Open(postgres.Open(databaseURL), cfg)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return gorm.Open(sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://")), cfg)
	default:
		return gorm.Open(sqlite.Open(databaseURL), cfg)
	}
}

// AutoMigrate creates or updates the three tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// EnsureDatabase creates the target database if the server-based backend does
// not have it yet. Embedded file backends create themselves on open.
func EnsureDatabase(databaseURL string) error {
	switch {
	case strings.HasPrefix(databaseURL, "mysql://"):
		return ensureMySQLDatabase(databaseURL)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return ensurePostgresDatabase(databaseURL)
	default:
		return nil
	}
}

func ensureMySQLDatabase(databaseURL string) error {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("invalid database URL: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return nil
	}

	password, _ := u.User.Password()
	adminDSN := fmt.Sprintf("%s:%s@tcp(%s)/", u.User.Username(), password, hostPort(u, "3306"))
	admin, err := sql.Open("mysql", adminDSN)
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer admin.Close()

	stmt := fmt.Sprintf(
		"CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", name,
	)
	if _, err := admin.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

func ensurePostgresDatabase(databaseURL string) error {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("invalid database URL: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return nil
	}

	adminURL := *u
	adminURL.Path = "/postgres"
	admin, err := sql.Open("postgres", adminURL.String())
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	row := admin.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err := admin.Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

func hostPort(u *url.URL, defaultPort string) string {
	if u.Port() != "" {
		return u.Host
	}
	return net.JoinHostPort(u.Hostname(), defaultPort)
}

func mysqlDSN(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	password, _ := u.User.Password()
	return fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True",
		u.User.Username(), password, hostPort(u, "3306"), strings.TrimPrefix(u.Path, "/"),
	), nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-reservation/models"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	// stay dates are calendar days stored as UTC midnight
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// ResolveMySQLDSN reads MYSQL_URL or DATABASE_URL, falling back to the
// DB_USER, DB_PASS, DB_HOST, DB_PORT and DB_NAME variables.
func ResolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_reservation")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens MySQL, migrates the schema and optionally loads the
// demo catalog into an empty database.
func ConnectDatabase(cfg Config, log *logrus.Logger) (*gorm.DB, error) {
	dsn, err := ResolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}
	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	// parents before children
	if err := db.AutoMigrate(
		&models.City{},
		&models.CancellationPolicy{},
		&models.CancellationRule{},
		&models.SpecialPeriod{},
		&models.Hotel{},
		&models.BoardType{},
		&models.RoomType{},
		&models.DailyPrice{},
		&models.DailyAvailability{},
		&models.Agency{},
		&models.AgencyTransaction{},
		&models.Contract{},
		&models.StaticRate{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.Guest{},
		&models.PaymentConfirmation{},
		&models.Wallet{},
		&models.WalletTransaction{},
	); err != nil {
		return nil, err
	}

	if cfg.SeedDemoData {
		if err := SeedDatabase(db, log, time.Now()); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// SeedDatabase writes the demo catalog when no hotel exists yet.
func SeedDatabase(db *gorm.DB, log *logrus.Logger, today time.Time) error {
	var count int64
	if err := db.Model(&models.Hotel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("catalog already seeded")
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range DemoCatalog(today) {
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("seed %T: %w", rec, err)
			}
		}
		log.Info("demo catalog seeded")
		return nil
	})
}

package database

import (
	"fmt"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/yukikurage/task-assignment-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database configured in cfg.
func Connect(cfg config.Database) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, cfg.LogQueries)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg config.Database) (gorm.Dialector, error) {
	dsn := cfg.DSN

	switch cfg.Driver {
	case config.DriverMySQL:
		if dsn == "" {
			dsn = mysqlDSN(cfg)
		}
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				cfg.Host,
				cfg.Port,
				cfg.User,
				cfg.Password,
				cfg.Name,
			)
		}
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		if dsn == "" {
			dsn = cfg.Name
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func mysqlDSN(cfg config.Database) string {
	c := mysqldriver.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	c.DBName = cfg.Name
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// Open opens a gorm session over dialector. Driver errors are translated so
// that unique violations surface as gorm.ErrDuplicatedKey on every dialect.
func Open(dialector gorm.Dialector, logQueries bool) (*gorm.DB, error) {
	level := logger.Warn
	if logQueries {
		level = logger.Info
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
}

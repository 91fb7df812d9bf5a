package database

import (
	"fmt"
	"log"
	"os"

	"trainhub/config"
	"trainhub/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection using the configured dialect.
// Postgres is the production default; mysql is supported for deployments
// that already run one; sqlite is for local development.
func ConnectDb() {
	var (
		db  *gorm.DB
		err error
	)

	switch config.AppConfig.DBDialect {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(config.AppConfig.DBName+".db"), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			config.AppConfig.DBName,
		)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			config.AppConfig.DBName,
			os.Getenv("DB_PORT"),
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", config.AppConfig.DBDialect, err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Session{},
		&models.ApprovalRequest{},
		&models.Enrollment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// One pending approval request per subject, enforced at the schema
	// level. MySQL has no partial indexes; it relies on the transactional
	// check in the approval service instead.
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		err = db.Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_subject_pending ON approval_requests (subject_type, subject_id) WHERE status = 'PENDING'",
		).Error
		if err != nil {
			log.Fatalf("Failed to create pending approval index: %v", err)
		}
	}

	log.Println("Migrations completed successfully.")
}

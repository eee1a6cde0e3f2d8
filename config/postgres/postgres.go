package postgres

import (
	"fmt"
	"log"
	"os"
	"time"

	"vanguard/models/postgres"

	_ "github.com/lib/pq"
	"gorm.io/datatypes"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM() (*gorm.DB, error) {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	database := os.Getenv("POSTGRES_DATABASE")
	verbose := os.Getenv("VERBOSE_POSTGRES")

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		user, password, host, port, database)

	gormConfig := &gorm.Config{
		// Duplicate-key inserts are part of the join flow; the engine
		// needs gorm.ErrDuplicatedKey rather than a driver error string.
		TranslateError: true,
	}
	if verbose == "true" {
		gormConfig.Logger = logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
			},
		)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		log.Printf("Error connecting to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying SQL DB: %v", err)
		return nil, err
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		log.Printf("Error pinging PostgreSQL: %v", err)
		return nil, err
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
// and seeds the map catalog on an empty install.
func MigrateDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		postgres.Player{},
		postgres.GameMap{},
		postgres.Match{},
		postgres.MatchPlayer{})
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if err := seedMaps(db); err != nil {
		return fmt.Errorf("map seeding failed: %w", err)
	}

	log.Println("PostgreSQL database migrated successfully")
	return nil
}

func seedMaps(db *gorm.DB) error {
	var count int64
	if err := db.Model(&postgres.GameMap{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	maps := []postgres.GameMap{
		{Code: "MAP1", Name: "Crossfire Valley", Layout: datatypes.JSON(`{"width":12,"height":12}`)},
		{Code: "MAP2", Name: "Twin Rivers", Layout: datatypes.JSON(`{"width":16,"height":10}`)},
		{Code: "MAP3", Name: "Frozen Outpost", Layout: datatypes.JSON(`{"width":10,"height":14}`)},
	}
	return db.Create(&maps).Error
}

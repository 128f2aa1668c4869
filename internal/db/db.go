package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/config"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

// SeedAdmin creates the first administrator when the users table has none.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", string(identity.RoleAdmin)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Admin",
		LastName:     "Sistema",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(identity.RoleAdmin),
		Permissions:  identity.PermissionStrings(identity.AllPermissions),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("seeded administrator")
	return nil
}

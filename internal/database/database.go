package database

import (
	"fmt"
	"strings"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	db, err := openDB(cfg.Database, resolveLogLevel(cfg))
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func openDB(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(withForeignKeys(cfg.DSNValue()))
	default:
		dialector = mysql.New(mysql.Config{
			DSN:               cfg.DSNValue(),
			DefaultStringSize: 191,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// withForeignKeys turns on sqlite foreign key enforcement for every pooled connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	if strings.HasPrefix(dsn, "file:") {
		return dsn + "?_foreign_keys=1"
	}
	return "file:" + dsn + "?_foreign_keys=1"
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ProfileModel{},
		&models.SkillModel{},
		&models.ExperienceModel{},
		&models.EducationModel{},
		&models.SocialLinkModel{},
		&models.RetrospectiveModel{},
		&models.TagModel{},
		&models.ProjectModel{},
		&models.AdminSession{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "mysql" {
		for _, stmt := range []string{
			"ALTER TABLE `profiles` MODIFY COLUMN `bio` LONGTEXT NULL",
			"ALTER TABLE `experiences` MODIFY COLUMN `description` LONGTEXT NULL",
			"ALTER TABLE `retrospectives` MODIFY COLUMN `description` LONGTEXT NULL",
			"ALTER TABLE `projects` MODIFY COLUMN `description` LONGTEXT NULL",
		} {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

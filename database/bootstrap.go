// database/bootstrap.go
package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"webplanner/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	// Backfill plan versions BEFORE AutoMigrate adds the unique index, so
	// legacy rows without a version number get one first.
	if err := migrateBackfillPlanVersions(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Project{},
		&entities.Plan{},
		&entities.Activity{},
		&entities.ResearchDoc{},
		&entities.ResearchChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

// migrateBackfillPlanVersions assigns version numbers to legacy plan rows
// that predate the version column, ordered by created_at within each project.
func migrateBackfillPlanVersions(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='plans'`).Scan(&tbl).Error; err != nil {
		return err
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}

	var hasVersion bool
	if err := db.Raw(`SELECT COUNT(*) > 0 FROM pragma_table_info('plans') WHERE name = 'version'`).Scan(&hasVersion).Error; err != nil {
		return err
	}
	if !hasVersion {
		// AutoMigrate will add the column; new rows always carry a version
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(`
UPDATE plans SET version = (
    SELECT COUNT(*) FROM plans p2
    WHERE p2.project_id = plans.project_id
      AND (p2.created_at < plans.created_at
           OR (p2.created_at = plans.created_at AND p2.plan_id <= plans.plan_id))
)
WHERE version IS NULL`).Error
	})
}

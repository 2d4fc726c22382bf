package seeds

import (
	"log"

	"gorm.io/gorm"

	"kntista_backend/internals/seeds/activity"
)

// RunAllSeeds fills an empty database. With force it first wipes events and
// every reference table.
func RunAllSeeds(db *gorm.DB, force bool) error {
	//* Activity
	hasData, err := activity.HasData(db)
	if err != nil {
		return err
	}
	if hasData && !force {
		log.Println("[SEED] reference data already present, skipping (set SEED_FORCE=true to reset)")
		return nil
	}
	return activity.SeedActivity(db)
}

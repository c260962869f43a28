package seeds

import (
	"gorm.io/gorm"

	"ecclesia_backend/internals/seeds/plans"
)

// RunAllSeeds loads the reference data every fresh database needs.
func RunAllSeeds(db *gorm.DB, plansFile string) error {
	_, err := plans.SeedPlans(db, plansFile)
	return err
}

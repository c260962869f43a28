package plans

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecclesia_backend/internals/features/billing/plans/model"
)

type PlanSeed struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	PriceCents       int64   `json:"price_cents"`
	MaxMembers       int     `json:"max_members"`
	MaxChildChurches int     `json:"max_child_churches"`
	IsActive         *bool   `json:"is_active"`
}

func (s PlanSeed) toModel() model.PlanModel {
	active := true
	if s.IsActive != nil {
		active = *s.IsActive
	}
	return model.PlanModel{
		PlanCode:             strings.ToLower(strings.TrimSpace(s.Code)),
		PlanName:             s.Name,
		PlanDescription:      s.Description,
		PlanPriceCents:       s.PriceCents,
		PlanMaxMembers:       s.MaxMembers,
		PlanMaxChildChurches: s.MaxChildChurches,
		PlanIsActive:         active,
	}
}

// LoadPlans reads plan seeds from a JSON file; an empty path gives DefaultPlans.
func LoadPlans(filePath string) ([]model.PlanModel, error) {
	if filePath == "" {
		return append([]model.PlanModel(nil), model.DefaultPlans...), nil
	}
	log.Println("📥 Reading plans file:", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var inputs []PlanSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return nil, err
	}
	out := make([]model.PlanModel, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Code) == "" {
			log.Printf("ℹ️ plan without code skipped (%q)", in.Name)
			continue
		}
		out = append(out, in.toModel())
	}
	return out, nil
}

// SeedPlans upserts plans by plan_code and returns how many rows were written.
func SeedPlans(db *gorm.DB, filePath string) (int, error) {
	rows, err := LoadPlans(filePath)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "plan_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"plan_name", "plan_description", "plan_price_cents",
				"plan_max_members", "plan_max_child_churches", "plan_is_active", "plan_updated_at",
			}),
		}).Create(&rows[i]).Error
		if err != nil {
			return i, err
		}
		log.Printf("✅ plan %q seeded", rows[i].PlanCode)
	}
	return len(rows), nil
}

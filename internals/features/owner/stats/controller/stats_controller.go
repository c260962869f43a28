package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	planChangeModel "ecclesia_backend/internals/features/billing/planchanges/model"
	churchModel "ecclesia_backend/internals/features/churches/churches/model"
	memberModel "ecclesia_backend/internals/features/members/members/model"
	helper "ecclesia_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

type StatsResponse struct {
	Churches            int64            `json:"churches"`
	RootChurches        int64            `json:"root_churches"`
	ChurchesByStatus    map[string]int64 `json:"churches_by_status"`
	Members             int64            `json:"members"`
	PendingPlanRequests int64            `json:"pending_plan_requests"`
}

// 🟢 GET /api/o/stats
func (ctl *StatsController) Get(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	out := StatsResponse{ChurchesByStatus: make(map[string]int64, len(constants.ChurchStatuses))}
	for _, s := range constants.ChurchStatuses {
		out.ChurchesByStatus[s] = 0
	}

	var byStatus []struct {
		ChurchStatus string
		N            int64
	}
	if err := db.Model(&churchModel.ChurchModel{}).
		Select("church_status, COUNT(*) AS n").
		Group("church_status").
		Scan(&byStatus).Error; err != nil {
		return err
	}
	for _, r := range byStatus {
		out.ChurchesByStatus[r.ChurchStatus] = r.N
		out.Churches += r.N
	}
	if err := db.Model(&churchModel.ChurchModel{}).
		Where("church_parent_id IS NULL").
		Count(&out.RootChurches).Error; err != nil {
		return err
	}
	if err := db.Model(&memberModel.MemberModel{}).Count(&out.Members).Error; err != nil {
		return err
	}
	if err := db.Model(&planChangeModel.PlanChangeModel{}).
		Where("plan_change_status = ?", planChangeModel.StatusPending).
		Count(&out.PendingPlanRequests).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Platform stats", out)
}

package database

import (
	"log"

	"gorm.io/gorm"

	paymentModel "ecclesia_backend/internals/features/billing/payments/model"
	planChangeModel "ecclesia_backend/internals/features/billing/planchanges/model"
	planModel "ecclesia_backend/internals/features/billing/plans/model"
	churchModel "ecclesia_backend/internals/features/churches/churches/model"
	devotionalModel "ecclesia_backend/internals/features/content/devotionals/model"
	eventModel "ecclesia_backend/internals/features/content/events/model"
	schoolModel "ecclesia_backend/internals/features/content/schools/model"
	documentModel "ecclesia_backend/internals/features/documents/documents/model"
	budgetModel "ecclesia_backend/internals/features/finance/budgets/model"
	categoryModel "ecclesia_backend/internals/features/finance/categories/model"
	transactionModel "ecclesia_backend/internals/features/finance/transactions/model"
	trilhaModel "ecclesia_backend/internals/features/journeys/trilhas/model"
	kidModel "ecclesia_backend/internals/features/kids/kids/model"
	memberModel "ecclesia_backend/internals/features/members/members/model"
	demandModel "ecclesia_backend/internals/features/ministries/demands/model"
	ministryModel "ecclesia_backend/internals/features/ministries/ministries/model"
	scheduleModel "ecclesia_backend/internals/features/ministries/schedules/model"
	notificationModel "ecclesia_backend/internals/features/notifications/notifications/model"
	authModel "ecclesia_backend/internals/features/users/auth/model"
	userModel "ecclesia_backend/internals/features/users/users/model"
	whatsappModel "ecclesia_backend/internals/features/whatsapp/model"
)

// Models lists every table in FK-safe creation order.
func Models() []any {
	return []any{
		&planModel.PlanModel{},
		&churchModel.ChurchModel{},
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.RevokedAccessTokenModel{},

		&memberModel.MemberModel{},
		&ministryModel.MinistryModel{},
		&ministryModel.VolunteerModel{},
		&scheduleModel.ScheduleModel{},
		&scheduleModel.ScheduleAssignmentModel{},
		&demandModel.DemandModel{},

		&eventModel.EventModel{},
		&devotionalModel.DevotionalModel{},
		&schoolModel.SchoolModel{},
		&schoolModel.EnrollmentModel{},

		&trilhaModel.TrilhaModel{},
		&trilhaModel.EtapaModel{},
		&trilhaModel.PassoModel{},
		&trilhaModel.QuizQuestionModel{},
		&trilhaModel.PassoProgressModel{},
		&trilhaModel.QuizAttemptModel{},

		&categoryModel.CategoryModel{},
		&transactionModel.TransactionModel{},
		&budgetModel.BudgetModel{},

		&kidModel.KidModel{},
		&kidModel.KidCheckinModel{},

		&notificationModel.NotificationModel{},
		&notificationModel.UserNotificationModel{},
		&whatsappModel.WhatsappSessionModel{},
		&whatsappModel.WhatsappMessageModel{},
		&documentModel.DocumentModel{},

		&planChangeModel.PlanChangeModel{},
		&paymentModel.SubscriptionPaymentModel{},
		&paymentModel.GatewayEventModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto: %v", err)
	}
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	log.Println("✅ Migration complete.")
	return nil
}

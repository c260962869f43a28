package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	authMiddleware "ecclesia_backend/internals/middlewares/auth"
	routeDetails "ecclesia_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, d routeDetails.Deps) {
	startTime = time.Now()

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Cfg.JWTSecret,
		Guard:               authMiddleware.DBGuard{DB: d.DB},
		AllowCookieFallback: true,
	})
	loader := authMiddleware.DBChurchLoader{DB: d.DB}

	BaseRoutes(app, d)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, d, jwt)

	// ===================== GROUPS =====================
	public := app.Group("/api/public")

	// member of a church; the church is optional for self-service endpoints
	user := app.Group("/api/u",
		jwt,
		authMiddleware.UseChurchScope(authMiddleware.ChurchScopeOpts{Loader: loader}),
		authMiddleware.BlockSuspendedWrites(),
	)

	// staff of the token church; each feature applies its own role guard
	admin := app.Group("/api/a",
		jwt,
		authMiddleware.UseChurchScope(authMiddleware.ChurchScopeOpts{Loader: loader, Required: true}),
		authMiddleware.BlockSuspendedWrites("/api/a/billing"),
	)

	owner := app.Group("/api/o", jwt, authMiddleware.OnlySuperadmin())

	webhooks := app.Group("/api/webhooks")

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting public routes...")
	routeDetails.JoinPublicRoutes(public, d)
	routeDetails.ChurchPublicRoutes(public, d)
	routeDetails.BillingPublicRoutes(public, d)

	log.Println("[INFO] Mounting church routes...")
	routeDetails.ChurchUserRoutes(user, d)
	routeDetails.ChurchAdminRoutes(admin, d)
	routeDetails.ChurchOwnerRoutes(owner, d)

	log.Println("[INFO] Mounting ministry routes...")
	routeDetails.MinistryUserRoutes(user, d)
	routeDetails.MinistryAdminRoutes(admin, d)

	log.Println("[INFO] Mounting content routes...")
	routeDetails.ContentUserRoutes(user, d)
	routeDetails.ContentAdminRoutes(admin, d)

	log.Println("[INFO] Mounting finance routes...")
	routeDetails.FinanceAdminRoutes(admin, d)

	log.Println("[INFO] Mounting community routes...")
	routeDetails.CommunityUserRoutes(user, d)
	routeDetails.CommunityAdminRoutes(admin, d)

	log.Println("[INFO] Mounting billing routes...")
	routeDetails.BillingAdminRoutes(admin, d)
	routeDetails.BillingOwnerRoutes(owner, d)
	routeDetails.WebhookRoutes(webhooks, d)
}

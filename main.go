package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"ecclesia_backend/internals/configs"
	database "ecclesia_backend/internals/databases"
	paymentService "ecclesia_backend/internals/features/billing/payments/service"
	sweepScheduler "ecclesia_backend/internals/features/billing/sweep/scheduler"
	authScheduler "ecclesia_backend/internals/features/users/auth/scheduler"
	"ecclesia_backend/internals/features/whatsapp/gateway"
	waScheduler "ecclesia_backend/internals/features/whatsapp/scheduler"
	waService "ecclesia_backend/internals/features/whatsapp/service"
	helper "ecclesia_backend/internals/helpers"
	"ecclesia_backend/internals/helpers/email"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	"ecclesia_backend/internals/helpers/realtime"
	"ecclesia_backend/internals/helpers/reporter"
	middlewares "ecclesia_backend/internals/middlewares"
	routes "ecclesia_backend/internals/route"
	routeDetails "ecclesia_backend/internals/route/details"
)

func main() {
	configs.LoadEnv()
	cfg := configs.App

	reporter.Init(cfg.RollbarToken, cfg.Env, os.Getenv("RAILWAY_GIT_COMMIT_SHA"))
	defer reporter.Close()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            middlewares.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               20 * 1024 * 1024,
	})

	// the realtime stream must reach the client unbuffered
	isStream := func(c *fiber.Ctx) bool { return strings.HasSuffix(c.Path(), "/realtime/stream") }
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault, Next: isStream}))
	app.Use(etag.New(etag.Config{Next: isStream}))
	middlewares.SetupMiddlewares(app, cfg)
	app.Use(middlewares.GlobalRateLimiter())

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	db := database.DB

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 📡 realtime: pg_notify fan-out across instances
	broker := realtime.NewBroker(64)
	if err := realtime.StartListener(rootCtx, cfg.ListenerDSN(), broker); err != nil {
		log.Printf("[WARN] realtime listener disabled, events stay local: %v", err)
		realtime.SetPublisher(broker)
	} else {
		realtime.SetPublisher(realtime.PGPublisher{DB: db})
	}

	waClient := gateway.NewClient(cfg.WhatsappGatewayURL, cfg.WhatsappGatewayKey)

	var charger paymentService.Charger
	if m := paymentService.InitMidtrans(cfg.MidtransServerKey, cfg.MidtransUseProd); m != nil {
		charger = m
	} else {
		log.Println("[WARN] MIDTRANS_SERVER_KEY is not set, checkout disabled")
	}

	// ⏱ scheduler after the DB is ready
	c := helper.NewCron()
	if err := authScheduler.RegisterTokenCleanup(c, db); err != nil {
		log.Fatalf("cron token cleanup: %v", err)
	}
	if err := waScheduler.RegisterDispatcher(c, waService.NewDispatcher(db, waClient), cfg.WhatsappPollSpec); err != nil {
		log.Fatalf("cron whatsapp dispatcher: %v", err)
	}
	if err := sweepScheduler.RegisterOverdueSweep(c, db, cfg.OverdueGraceDays); err != nil {
		log.Fatalf("cron overdue sweep: %v", err)
	}
	c.Start()

	routes.SetupRoutes(app, routeDetails.Deps{
		DB:  db,
		Cfg: cfg,
		Store: helperOSS.NewBlobStore(helperOSS.Config{
			Endpoint:   cfg.OSSEndpoint,
			AccessKey:  cfg.OSSAccessKey,
			SecretKey:  cfg.OSSSecretKey,
			Bucket:     cfg.OSSBucket,
			PublicBase: cfg.OSSPublicBase,
		}),
		Mailer:   email.New(cfg.SendgridAPIKey, cfg.AppName, cfg.MailFrom),
		Broker:   broker,
		Charger:  charger,
		Whatsapp: waClient,
	})

	// 🔒 Keep-Alive & timeouts; WriteTimeout stays 0 for the SSE stream
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron, listener, HTTP, then the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	<-c.Stop().Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
}

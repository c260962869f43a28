package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string

	// App holds the resolved configuration after LoadEnv.
	App Config
)

type Config struct {
	Port        string
	Env         string
	LogTimeZone string

	AppName string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	GoogleClientID string

	MidtransServerKey string
	MidtransUseProd   bool
	AsaasWebhookToken string

	SendgridAPIKey string
	MailFrom       string

	WhatsappGatewayURL string
	WhatsappGatewayKey string
	WhatsappPollSpec   string

	OSSEndpoint   string
	OSSAccessKey  string
	OSSSecretKey  string
	OSSBucket     string
	OSSPublicBase string

	RollbarToken string

	TrialDays         int
	OverdueGraceDays  int
	SystemResetPhrase string

	CorsOrigins []string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system environment")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system environment")
	}

	App = Load(viper.New())

	JWTSecret = App.JWTSecret
	JWTRefreshSecret = App.JWTRefreshSecret
	GoogleClientID = App.GoogleClientID

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	}
	if GoogleClientID == "" {
		log.Println("[WARN] GOOGLE_CLIENT_ID is not set, google login disabled")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_TZ", "UTC")
	v.SetDefault("APP_NAME", "Ecclesia")
	v.SetDefault("ACCESS_TTL", "15m")
	v.SetDefault("REFRESH_TTL", "168h")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("MIDTRANS_USE_PROD", false)
	v.SetDefault("MAIL_FROM", "no-reply@ecclesia.app")
	v.SetDefault("WA_POLL_SPEC", "@every 15s")
	v.SetDefault("TRIAL_DAYS", 14)
	v.SetDefault("OVERDUE_GRACE_DAYS", 7)
	v.SetDefault("SYSTEM_RESET_PHRASE", "RESET ALL CHURCH DATA")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
}

// Load resolves Config from the environment bound to v.
func Load(v *viper.Viper) Config {
	setDefaults(v)
	v.AutomaticEnv()

	return Config{
		Port:        v.GetString("PORT"),
		Env:         v.GetString("APP_ENV"),
		LogTimeZone: v.GetString("LOG_TZ"),
		AppName:     v.GetString("APP_NAME"),

		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTRefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
		AccessTTL:        v.GetDuration("ACCESS_TTL"),
		RefreshTTL:       v.GetDuration("REFRESH_TTL"),

		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),

		MidtransServerKey: v.GetString("MIDTRANS_SERVER_KEY"),
		MidtransUseProd:   v.GetBool("MIDTRANS_USE_PROD"),
		AsaasWebhookToken: v.GetString("ASAAS_WEBHOOK_TOKEN"),

		SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
		MailFrom:       v.GetString("MAIL_FROM"),

		WhatsappGatewayURL: strings.TrimRight(v.GetString("WA_GATEWAY_URL"), "/"),
		WhatsappGatewayKey: v.GetString("WA_GATEWAY_KEY"),
		WhatsappPollSpec:   v.GetString("WA_POLL_SPEC"),

		OSSEndpoint:   v.GetString("ALI_OSS_ENDPOINT"),
		OSSAccessKey:  v.GetString("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey:  v.GetString("ALI_OSS_SECRET_KEY"),
		OSSBucket:     v.GetString("ALI_OSS_BUCKET"),
		OSSPublicBase: v.GetString("ALI_OSS_PUBLIC_BASE"),

		RollbarToken: v.GetString("ROLLBAR_TOKEN"),

		TrialDays:         v.GetInt("TRIAL_DAYS"),
		OverdueGraceDays:  v.GetInt("OVERDUE_GRACE_DAYS"),
		SystemResetPhrase: v.GetString("SYSTEM_RESET_PHRASE"),

		CorsOrigins: splitCSV(v.GetString("CORS_ORIGINS")),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN builds the postgres URL with a statement timeout, as used by the pool.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=ecclesia&options=-c statement_timeout=5000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// ListenerDSN is the plain URL used by the lib/pq LISTEN connection.
func (c Config) ListenerDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitCSV(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// DATABASE CONNECTOR (CLI)
// =======================
func InitCLIDB() *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  App.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Database connection failed (CLI): %v", err)
	}
	log.Println("✅ Database (CLI) connected.")
	return db
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string // Supabase Postgres connection string
	JWTSecret        string
	ConsultantCode   string // shared signup code gating consultant accounts; empty disables self-serve
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	S3Bucket         string
	AWSRegion        string
	AssetsCDNBase    string
	PaymentDelay     time.Duration
	RegistrationFee  int64 // naira, covers name reservation + CAC fees + stamp duty
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:             get("PORT", "8080"),
		DatabaseURL:      must("SUPABASE_DB_URL"),
		JWTSecret:        must("JWT_SECRET"),
		ConsultantCode:   get("CONSULTANT_SIGNUP_CODE", ""),
		GeminiAPIKey:     get("GEMINI_API_KEY", ""),
		GeminiModel:      get("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiImageModel: get("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-exp"),
		S3Bucket:         get("S3_BUCKET", "smelab-uploads"),
		AWSRegion:        get("AWS_REGION", "eu-central-1"),
		AssetsCDNBase:    get("ASSETS_CDN_BASE_URL", ""),
		PaymentDelay:     time.Duration(getInt("PAYMENT_DELAY_MS", 2000)) * time.Millisecond,
		RegistrationFee:  int64(getInt("REGISTRATION_FEE", 25000)),
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}

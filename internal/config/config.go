package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Business constants used on invoices and in the tax split.
	FirmName      string
	FirmAddress   string
	GSTIN         string
	HomeStateCode string // first two digits of our GSTIN
	HomeStateName string

	BankName      string
	BankAccountNo string
	BankIFSC      string
	BankHolder    string
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=graintrader port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		FirmName:      getEnv("FIRM_NAME", "Nagariya Traders"),
		FirmAddress:   getEnv("FIRM_ADDRESS", ""),
		GSTIN:         getEnv("FIRM_GSTIN", ""),
		HomeStateCode: getEnv("HOME_STATE_CODE", "23"),
		HomeStateName: getEnv("HOME_STATE_NAME", "Madhya Pradesh"),

		BankName:      getEnv("BANK_NAME", ""),
		BankAccountNo: getEnv("BANK_ACCOUNT_NO", ""),
		BankIFSC:      getEnv("BANK_IFSC", ""),
		BankHolder:    getEnv("BANK_HOLDER_NAME", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if len(cfg.HomeStateCode) != 2 {
		log.Fatal("[FATAL] HOME_STATE_CODE must be a 2-digit GST state code")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	LogFile       string
	JWTSecret     string
	JWTTTLHours   int
	ResetTTLMin   int
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "arthaus.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./arthaus.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret-change-me"
		log.Println("[config] JWT_SECRET not set; using insecure dev default")
	}
	ttl := intEnv("JWT_TTL_HOURS", 24)
	resetTTL := intEnv("RESET_TOKEN_TTL_MINUTES", 30)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@arthaus.test"
	}
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "Passw0rd!"
	}

	cfg := Config{
		Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile,
		JWTSecret: secret, JWTTTLHours: ttl, ResetTTLMin: resetTTL,
		AdminEmail: adminEmail, AdminPassword: adminPass,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s JWT_TTL=%dh", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.JWTTTLHours)
	return cfg
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring bad %s=%q", key, v)
		return def
	}
	return n
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	// AdminEmails is the allow-list gating mark-paid and dashboard login.
	AdminEmails       []string
	AdminPasswordHash string
	JWTSecret         string

	SmsBaseURL  string
	SmsAPIKey   string
	SmsDeviceID string
	SmsTimeout  time.Duration

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/coaching_db?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	smsTimeout := 20 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SMS_TIMEOUT_SECONDS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			smsTimeout = time.Duration(n) * time.Second
		}
	}

	return Env{
		AppAddr:           appAddr,
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:             dsn,
		AdminEmails:       SplitEmailList(os.Getenv("ADMIN_EMAILS")),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SmsBaseURL:        strings.TrimSpace(os.Getenv("SMS_BASE_URL")),
		SmsAPIKey:         strings.TrimSpace(os.Getenv("SMS_API_KEY")),
		SmsDeviceID:       strings.TrimSpace(os.Getenv("SMS_DEVICE_ID")),
		SmsTimeout:        smsTimeout,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS"), []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}),
	}
}

func splitList(raw string, def []string) []string {
	out := []string{}
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// SplitEmailList parses a comma separated allow-list, lowercased and trimmed.
func SplitEmailList(raw string) []string {
	out := []string{}
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// IsAdmin reports membership in the administrator allow-list.
func (e Env) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, a := range e.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

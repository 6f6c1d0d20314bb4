package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr     string
	GinMode     string
	AppEnv      string
	CORSOrigins []string
	DB          DBEnv
}

type DBEnv struct {
	User     string
	Password string
	Addr     string
	Name     string
}

func LoadEnv() Env {
	return Env{
		AppAddr:     getenv("APP_ADDR", ":8080"),
		GinMode:     getenv("GIN_MODE", ""),
		AppEnv:      getenv("APP_ENV", "development"),
		CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DB: DBEnv{
			User:     getenv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Addr:     getenv("DB_ADDR", "127.0.0.1:3306"),
			Name:     getenv("DB_NAME", "limo_service"),
		},
	}
}

// IsDevelopment selects human-readable logs.
func (e Env) IsDevelopment() bool {
	return strings.EqualFold(e.AppEnv, "development") || strings.EqualFold(e.AppEnv, "dev")
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

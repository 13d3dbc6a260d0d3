package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != ":4000" {
		t.Fatalf("expected :4000, got %s", cfg.Addr())
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
	if cfg.Store.Driver != DriverFile || cfg.Store.DataFile != "data/users.json" {
		t.Fatalf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Fatalf("expected 5s store timeout, got %s", cfg.Store.Timeout)
	}
	if cfg.HTTP.TLSCertFile != "certs/cert.pem" || cfg.HTTP.TLSKeyFile != "certs/key.pem" {
		t.Fatalf("unexpected tls defaults: %+v", cfg.HTTP)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors default: %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Auth.AdminGuard || cfg.Auth.JWTSecret != "" {
		t.Fatalf("auth must be off by default: %+v", cfg.Auth)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Store.Redis.Key != "user-management:users" {
		t.Fatalf("unexpected redis key: %s", cfg.Store.Redis.Key)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":           "8081",
		"STORE_DRIVER":   "postgres",
		"POSTGRES_URL":   "postgres://localhost/users",
		"CORS_ORIGINS":   "http://a.test,http://b.test",
		"RATE_LIMIT_RPS": "2.5",
		"JWT_SECRET":     "s3cret",
		"ADMIN_GUARD":    "true",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" || cfg.Store.Driver != DriverPostgres {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.HTTP.RateLimitRPS != 2.5 || !cfg.Auth.AdminGuard {
		t.Fatalf("unexpected values: %+v %+v", cfg.HTTP, cfg.Auth)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":          {"STORE_DRIVER": "cassandra"},
		"postgres without url":    {"STORE_DRIVER": "postgres"},
		"admin guard w/o secret":  {"ADMIN_GUARD": "true"},
		"negative rate":           {"RATE_LIMIT_RPS": "-1"},
		"bad log level":           {"LOG_LEVEL": "loud"},
		"unparsable store budget": {"STORE_TIMEOUT": "soon"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

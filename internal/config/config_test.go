package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CEP_SETTLE_DELAY", "")

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.JWTTTL)
	}
	if cfg.CEPSettleDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms settle delay, got %s", cfg.CEPSettleDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("MAIL_PORT", "587")
	t.Setenv("MAIL_USER", "bot@example.com")
	t.Setenv("S3_BUCKET", "logs")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg := Load()

	if cfg.Addr() != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr())
	}
	if cfg.JWTTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.JWTTTL)
	}
	if len(cfg.AllowOrigins) != 2 || cfg.AllowOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.AllowOrigins)
	}
	if cfg.SMTP.Port != 587 || !cfg.SMTP.Enabled() {
		t.Errorf("unexpected smtp config %+v", cfg.SMTP)
	}
	if !cfg.S3.Enabled() {
		t.Error("expected s3 to be enabled")
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")

	if got := Load().JWTTTL; got != 24*time.Hour {
		t.Errorf("expected fallback to 24h, got %s", got)
	}
}

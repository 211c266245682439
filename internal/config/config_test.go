package config

import (
	"testing"
	"time"
)

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("http_addr=%s want=:8080", cfg.Server.HTTPAddr)
	}
	if cfg.Abuse.Window != time.Minute {
		t.Fatalf("window=%s want=1m", cfg.Abuse.Window)
	}
	if cfg.Abuse.MaxWriteRequests >= cfg.Abuse.MaxRequests {
		t.Fatalf("write ceiling %d not stricter than read ceiling %d",
			cfg.Abuse.MaxWriteRequests, cfg.Abuse.MaxRequests)
	}
	if cfg.Abuse.SuspiciousThreshold <= cfg.Abuse.MaxRequests {
		t.Fatalf("suspicious threshold %d not above request ceiling %d",
			cfg.Abuse.SuspiciousThreshold, cfg.Abuse.MaxRequests)
	}
	if cfg.Abuse.BlockDuration <= cfg.Abuse.Window {
		t.Fatal("block duration should outlast the window")
	}
	if !cfg.StatsCache.Enabled {
		t.Fatal("stats cache default should be enabled")
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis addr default=%q want empty", cfg.Redis.Addr)
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load("does-not-exist.yaml", false); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

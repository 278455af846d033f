package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParseOverridesDefaults(t *testing.T) {
	raw := []byte(`
repository_url = "https://example.com/index"
cache_timeout_seconds = 60
avoid_prerelease = true
`)
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.RepositoryURL != "https://example.com/index" {
		t.Fatalf("RepositoryURL = %q", s.RepositoryURL)
	}
	if s.CacheTimeout != 60*time.Second {
		t.Fatalf("CacheTimeout = %s, want 60s", s.CacheTimeout)
	}
	if !s.AvoidPrerelease {
		t.Fatal("AvoidPrerelease should be true")
	}
	if !s.Conservative {
		t.Fatal("Conservative should keep its default of true")
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("not = [valid")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Fatalf("got %+v, want Default()", s)
	}
}

func TestStrategyReflectsSettings(t *testing.T) {
	s := Settings{Conservative: false, AvoidPrerelease: true}
	strat := s.Strategy()
	if strat.Conservative || !strat.AvoidPrerelease {
		t.Fatalf("got %+v", strat)
	}
}

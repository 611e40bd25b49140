package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Ollama.Endpoint != "http://localhost:11434" {
		t.Errorf("got endpoint %q", cfg.Ollama.Endpoint)
	}
	if cfg.Ollama.Model != "llama3.2:3b" {
		t.Errorf("got model %q", cfg.Ollama.Model)
	}
	if cfg.Ollama.Timeout != 180*time.Second {
		t.Errorf("got timeout %v", cfg.Ollama.Timeout)
	}
	if cfg.Ollama.Temperature != 0.1 || cfg.Ollama.NumPredict != 4096 {
		t.Errorf("got generation options %v / %v", cfg.Ollama.Temperature, cfg.Ollama.NumPredict)
	}
	if cfg.Ollama.MaxTranscriptChars != 8000 {
		t.Errorf("got max transcript chars %d", cfg.Ollama.MaxTranscriptChars)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("got port %d", cfg.Server.Port)
	}
	if cfg.App.DataDir != ".voxnote" {
		t.Errorf("got data dir %q", cfg.App.DataDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("VOXNOTE_OLLAMA_MODEL", "qwen2.5:7b")
	t.Setenv("VOXNOTE_SERVER_PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Ollama.Model != "qwen2.5:7b" {
		t.Errorf("env override not applied, got %q", cfg.Ollama.Model)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("env override not applied, got %d", cfg.Server.Port)
	}
}

func TestGetLoadsLazily(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := Get()
	if cfg == nil || cfg.Ollama.Endpoint == "" {
		t.Fatal("Get should load defaults when nothing was loaded yet")
	}
	if Get() != cfg {
		t.Error("Get should return the same instance")
	}
}

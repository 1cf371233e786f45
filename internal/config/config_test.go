package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Addr:            ":3000",
		AllowedOrigins:  []string{"http://localhost:5173"},
		LogLevel:        log.LevelInfo,
		MatchInterval:   time.Second,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ShutdownTimeout: 5 * time.Second,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	env := envMap(map[string]string{
		"CHESS_ADDR":            ":8080",
		"CHESS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
		"CHESS_LOG_LEVEL":       "debug",
		"CHESS_MATCH_INTERVAL":  "250ms",
	})
	cfg, err := Load([]string{"-addr", ":9000"}, env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("flag should win over env, got %s", cfg.Addr)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.LogLevel != log.LevelDebug || cfg.MatchInterval != 250*time.Millisecond {
		t.Fatalf("env values not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "log level", args: []string{"-log-level", "loud"}},
		{name: "interval env", env: map[string]string{"CHESS_MATCH_INTERVAL": "soon"}},
		{name: "zero interval", args: []string{"-match-interval", "0s"}},
		{name: "buffer size", env: map[string]string{"CHESS_WS_BUFFER_SIZE": "big"}},
		{name: "unknown flag", args: []string{"-port", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args, envMap(tt.env)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr            string
	AllowedOrigins  []string
	LogLevel        log.Level
	MatchInterval   time.Duration
	ReadBufferSize  int
	WriteBufferSize int
	ShutdownTimeout time.Duration
}

// Load reads flags from args, falling back to CHESS_* environment variables
// and then to defaults. lookup is usually os.Getenv.
func Load(args []string, lookup func(string) string) (Config, error) {
	getenv := func(key, def string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return def
	}

	interval, err := time.ParseDuration(getenv("CHESS_MATCH_INTERVAL", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("CHESS_MATCH_INTERVAL: %w", err)
	}
	bufferSize, err := strconv.Atoi(getenv("CHESS_WS_BUFFER_SIZE", "1024"))
	if err != nil {
		return Config{}, fmt.Errorf("CHESS_WS_BUFFER_SIZE: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allowed-origins", getenv("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	matchInterval := fs.Duration("match-interval", interval, "how often the matchmaking queue is drained")
	buffers := fs.Int("ws-buffer-size", bufferSize, "websocket read and write buffer size in bytes")
	shutdown := fs.Duration("shutdown-timeout", 5*time.Second, "grace period for open connections on shutdown")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	logLevel, err := ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	if *matchInterval <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %s", *matchInterval)
	}

	return Config{
		Addr:            *addr,
		AllowedOrigins:  splitList(*origins),
		LogLevel:        logLevel,
		MatchInterval:   *matchInterval,
		ReadBufferSize:  *buffers,
		WriteBufferSize: *buffers,
		ShutdownTimeout: *shutdown,
	}, nil
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

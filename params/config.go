package params

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Engine struct {
	// SweepInterval is how often the background sweeper garbage-collects
	// terminal orders and re-runs the cross-book matching pass.
	//
	// Shorter intervals pick up out-of-band balance credits faster at the
	// cost of more lock traffic on both books. 5s matches the historical
	// default and is fine for anything but latency-sensitive demos.
	SweepInterval time.Duration

	// HistoryLimit caps the transaction history. 0 keeps everything.
	HistoryLimit int
}

type Log struct {
	// File is an optional path for the file half of the console+file tee.
	// Empty means console only.
	File string
}

type Config struct {
	Engine Engine
	Log    Log
}

func Default() Config {
	return Config{
		Engine: Engine{
			SweepInterval: 5 * time.Second,
			HistoryLimit:  0,
		},
		Log: Log{
			File: "",
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if it exists) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load() // loads .env from current directory
	}

	if sweep := os.Getenv("ENGINE_SWEEP_INTERVAL_MS"); sweep != "" {
		if ms, err := strconv.Atoi(sweep); err == nil && ms > 0 {
			cfg.Engine.SweepInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if limit := os.Getenv("ENGINE_HISTORY_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 0 {
			cfg.Engine.HistoryLimit = n
		}
	}

	if file := os.Getenv("LOG_FILE"); file != "" {
		cfg.Log.File = file
	}

	return cfg
}

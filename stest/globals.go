package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is the name used for the binary, config directory and env prefix
	DefaultAppName        = "stest"
	DefaultEnvPrefix      = strings.ToUpper(DefaultAppName)
	DefaultConfigPath     = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultConfigName     = "config"
	DefaultConfigType     = "yaml"
	DefaultVersion        = "9"
	DefaultLogLevel       = "warn"
	DefaultWorkers        = runtime.NumCPU()
	DefaultManPageSection = "1"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance writing to w.
// Writes are serialized, so the logger may be shared between goroutines.
// An unknown level falls back to DefaultLogLevel.
func GetLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl, _ = zerolog.ParseLevel(DefaultLogLevel)
	}
	return zerolog.New(zerolog.SyncWriter(w)).Level(lvl).With().Timestamp().Logger()
}

package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogger applies the level and format settings to the standard logrus logger.
func ConfigureLogger(cfg Config) {
	log.SetOutput(os.Stdout)

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

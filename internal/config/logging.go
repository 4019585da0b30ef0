package config

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets the global logrus level and formatter.  LOG_FORMAT
// "text" selects the human readable formatter; anything else logs JSON.
func (c Config) ConfigureLogging() {
	log.SetOutput(os.Stdout)
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("unknown LOG_LEVEL, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	if strings.EqualFold(c.LogFormat, "text") {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return
	}
	log.SetFormatter(&log.JSONFormatter{})
}

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "realestate-crm.com/realestate-crm/internal/configs"
)

var rootCmd = &cobra.Command{
	Use:           "crm",
	Short:         "Real-estate CRM service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// bootstrap loads the environment and configures logging for a command.
func bootstrap() config.Config {
	envErr := godotenv.Load()

	cfg := config.Load()
	config.ConfigureLogger(cfg)

	if envErr != nil {
		log.Debug(".env file not found, using environment variables")
	}
	return cfg
}

package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "realestate-crm.com/realestate-crm/internal/configs"
	"realestate-crm.com/realestate-crm/internal/fixtures"
	model "realestate-crm.com/realestate-crm/internal/models"
	"realestate-crm.com/realestate-crm/internal/services"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load YAML fixtures through the service layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := bootstrap()

		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := fixtures.Parse(f)
		if err != nil {
			return err
		}

		svc := services.New(config.NewDatabaseClient(cfg), nil)
		summary, err := fixtures.Apply(cmd.Context(), svc, doc, model.Today())
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"file":          seedFile,
			"collaborators": summary.Collaborators,
			"properties":    summary.Properties,
			"clients":       summary.Clients,
			"tasks":         summary.Tasks,
		}).Info("fixtures loaded")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures.yaml", "YAML fixtures file")
	rootCmd.AddCommand(seedCmd)
}

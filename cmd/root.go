package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"evently/config"
	"evently/di"
)

const CONFIG_ENV = "EVENTLY_CONFIG"

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "evently",
		Short:        "Evently screen server",
		Long:         `Serves paginated Ticketmaster event lists and cached event details to remote screens`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", os.Getenv(CONFIG_ENV), "path to a JSON config file")
	return rootCmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	log.Println("[MAIN] starting server!")
	return container.Start()
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[MAIN] %v", err)
	}
}

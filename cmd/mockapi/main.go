package main

import (
	"fmt"
	"os"
	"strconv"

	"PayFlow/config"
	"PayFlow/internal/mockapi"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mockapi [delayMs] [with400]",
		Short: "Merchant mock API for the payment flow demo",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewMockAPI()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if err := applyOverrides(cmd, args, &cfg); err != nil {
				return err
			}
			mockapi.Run(cfg)
			return nil
		},
	}

	cmd.Flags().Int("delay", 0, "Delay in milliseconds added to every non-preflight request")
	cmd.Flags().Bool("with400", false, "Answer roughly 20% of requests with 400")

	return cmd
}

// applyOverrides layers explicit flags and then positional arguments over the
// environment config.
func applyOverrides(cmd *cobra.Command, args []string, cfg *config.MockAPIConfig) error {
	if cmd.Flags().Changed("delay") {
		d, _ := cmd.Flags().GetInt("delay")
		cfg.DelayMs = d
	}
	if cmd.Flags().Changed("with400") {
		w, _ := cmd.Flags().GetBool("with400")
		cfg.With400 = w
	}

	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			return fmt.Errorf("invalid delayMs %q", args[0])
		}
		cfg.DelayMs = d
	}
	if len(args) > 1 {
		cfg.With400 = args[1] == "true"
	}
	return nil
}

// Command token mints a bearer token for the dashboard API using the
// JWT_SECRET the server is configured with.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"school-dashboard/config"
	"school-dashboard/utils"
)

var tokenFlags struct {
	subject string
	ttl     time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for /api/v1",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&tokenFlags.subject, "sub", "dashboard", "token subject")
	f.DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, _ []string) error {
	config.LoadEnv()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := utils.GenerateToken(tokenFlags.subject, secret, tokenFlags.ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

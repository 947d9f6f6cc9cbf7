package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the CLI configuration",
		Long:  "Configuration is read from ~/.config/rd/config.yaml. RD_* environment variables override it, e.g. RD_SERVER_URL for server.url.",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.SMTP.Pass != "" {
				cfg.SMTP.Pass = "********"
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), cfg)
			}
			path, err := configPath()
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), []string{
				"Config:    " + path,
				"Server:    " + cfg.Server.URL,
				fmt.Sprintf("Port:      %d", cfg.Server.Port),
				"Database:  " + cfg.DB.Path,
				fmt.Sprintf("Dev:       %t", cfg.Dev),
				"SMTP:      " + smtpSummary(cfg),
				"Reminders: " + orDash(cfg.Reminders.Schedule),
			})
		},
	}
}

func smtpSummary(cfg Config) string {
	if !cfg.Mailer().Config.IsConfigured() {
		return "not configured"
	}
	return fmt.Sprintf("%s:%s as %s", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value in the config file. Keys: " + strings.Join(configKeys, ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setConfigValue(args[0], args[1]); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"key": args[0], "value": args[1]})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s.\n", args[0])
			return err
		},
	}
}

package cmd

import (
	"strings"

	"github.com/marcus/otpbox/internal/config"
	"github.com/marcus/otpbox/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change project prompt settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings (file, environment and defaults)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(getBaseDir())
		if err != nil {
			return err
		}
		warnConfig(cfg)
		kind, err := cfg.Kind()
		if err != nil {
			return err
		}
		s := cfg.Style()

		output.KeyValue("boxes", cfg.BoxCount())
		output.KeyValue("filter", kind)
		output.KeyValue("once", cfg.Once)
		output.KeyValue("mask", cfg.Mask)
		output.KeyValue("bold", s.Font.Bold)
		output.KeyValue("spacing", s.Spacing)
		output.KeyValue("corner_radius", s.CornerRadius)
		output.KeyValue("border_width", s.BorderWidth)
		output.KeyValue("border_color", orDefault(cfg.BorderColor))
		output.KeyValue("text_color", orDefault(cfg.TextColor))
		output.KeyValue("background_color", orDefault(cfg.BackgroundColor))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in the project config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(getBaseDir(), args[0], args[1]); err != nil {
			return err
		}
		output.Success("%s set to %s", args[0], args[1])
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the project config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Unset(getBaseDir(), args[0]); err != nil {
			return err
		}
		output.Success("%s unset", args[0])
		return nil
	},
}

// warnConfig reports environment values Resolve ignored.
func warnConfig(cfg *config.Config) {
	for _, w := range cfg.Warnings {
		output.Warning("%s", w)
	}
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)

	configSetCmd.Long = "Known keys: " + strings.Join(config.Keys(), ", ")
	configSetCmd.Example = "  otpbox config set boxes 4\n  otpbox config set filter word"

	rootCmd.AddCommand(configCmd)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/custdesk/internal/config"
	"github.com/muurk/custdesk/internal/ui"
)

var profileNote string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetURLCmd)
	configCmd.AddCommand(configUseCmd)
	configCmd.AddCommand(configPathCmd)

	configSetURLCmd.Flags().StringVar(&profileNote, "note", "", "Free text shown by 'config show'")
}

// configCmd groups the profile registry commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage service profiles",
	Long: `Manage named service profiles stored in config.yaml.

The base URL is resolved in this order:
  1. --api-url flag
  2. ` + config.BaseURLEnvVar + ` environment variable (a .env file is loaded first)
  3. the selected profile (--profile, or the active profile)
  4. ` + config.DefaultBaseURL,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profiles and the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(false)
		if err != nil {
			return err
		}
		registry := settings.Registry

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		timeout := "none"
		if settings.Timeout > 0 {
			timeout = settings.Timeout.String()
		}

		fmt.Println(ui.NewHeader("Configuration", "custdesk config show",
			ui.Param{Key: "File", Value: path},
			ui.Param{Key: "Base URL", Value: fmt.Sprintf("%s (%s)", settings.BaseURL, settings.Source)},
			ui.Param{Key: "Profile", Value: settings.Profile},
			ui.Param{Key: "Timeout", Value: timeout},
		).Render())

		names := registry.ProfileNames()
		if len(names) == 0 {
			fmt.Println("No profiles saved. Add one with 'custdesk config set-url <profile> <url>'.")
			return nil
		}

		active := registry.ActiveProfileName()
		for _, name := range names {
			p := registry.GetProfile(name)
			marker := " "
			if name == active {
				marker = "*"
			}

			line := fmt.Sprintf("%s %-12s %s", marker, name, p.BaseURL)
			var extra []string
			if p.Note != "" {
				extra = append(extra, p.Note)
			}
			if !p.LastUsed.IsZero() {
				extra = append(extra, "last used "+p.LastUsed.Format("2006-01-02 15:04"))
			}
			if len(extra) > 0 {
				line += "  " + ui.HintStyle.Render("("+strings.Join(extra, ", ")+")")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url <profile> <url>",
	Short: "Create or update a profile",
	Example: `  custdesk config set-url default http://localhost:8080/customerapi
  custdesk config set-url staging https://staging.example.com/customerapi --note "shared test data"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, rawURL := args[0], strings.TrimRight(args[1], "/")
		if err := config.ValidateBaseURL(rawURL); err != nil {
			return fmt.Errorf("invalid URL: %w", err)
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		profile := registry.SetProfileURL(name, rawURL)
		if cmd.Flags().Changed("note") {
			profile.Note = profileNote
		}
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Println(ui.NewSuccessResult("Profile saved",
			ui.Param{Key: "Profile", Value: name},
			ui.Param{Key: "URL", Value: rawURL},
		).Render())
		return nil
	},
}

var configUseCmd = &cobra.Command{
	Use:     "use <profile>",
	Short:   "Select the active profile",
	Example: `  custdesk config use staging`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if err := registry.UseProfile(args[0]); err != nil {
			return err
		}
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("Active profile is now %q\n", args[0])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reorgboard/internal"
)

func newInitConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create the default configuration file, or print the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := opts.configPath
			if configPath == "" {
				p, err := internal.UserConfigPath()
				if err != nil {
					return fmt.Errorf("failed to get config path: %w", err)
				}
				configPath = p
			}
			out := cmd.OutOrStdout()

			written, err := internal.SaveDefaultConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			if written {
				fmt.Fprintf(out, "Created configuration file at %s\n", configPath)
				return nil
			}

			content, err := os.ReadFile(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration file already exists at %s\n", configPath)
			fmt.Fprintln(out, "\nCurrent settings:")
			fmt.Fprintln(out, "=================")
			fmt.Fprintf(out, "%s\n", string(content))
			return nil
		},
	}
}

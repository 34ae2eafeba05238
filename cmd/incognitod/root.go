package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "incognitod",
		Short: "Ephemeral per-session browsing store",
		Long: `incognitod keeps cookies, history and a response cache per private
browsing session, entirely in memory. Nothing survives the session or the
process.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML config file; environment variables override it")
	root.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load before reading the environment")
	root.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	root.AddCommand(newServeCmd(&flags), newConfigCmd(&flags))
	return root
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

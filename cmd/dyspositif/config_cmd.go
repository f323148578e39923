package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/dyspositif/internal/yamlutil"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Config prints the settings a conversion would use after merging the config
file, DYSPOSITIF_* environment variables and flags. The PDF password is
never printed.`,
		Args: exactArgs(0),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(v)
			if err != nil {
				return err
			}
			if cfg.PDF.Password != "" {
				cfg.PDF.Password = "********"
			}

			data, err := yamlutil.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addConversionFlags(cmd.Flags())
	return cmd
}

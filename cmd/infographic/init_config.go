package main

import (
	"github.com/spf13/cobra"

	"github.com/wmiig/infographic/src/config"
	"github.com/wmiig/infographic/src/logging"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".infographic.toml"
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		logging.Infof("wrote %s", path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().Bool("force", false, "overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd)
}

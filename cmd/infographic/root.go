package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wmiig/infographic/src/config"
	"github.com/wmiig/infographic/src/layout"
	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/render"
)

var (
	cfg        config.Config
	initErr    error
	configFile string
)

var rootCmd = &cobra.Command{
	Use:           "infographic",
	Short:         "Build a personal social feed infographic",
	Long:          "Infographic aggregates a feed export into chart payloads and renders them into an HTML page as inline SVG.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		logging.SetLevel(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default .infographic.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().String("measurer", "", "text measurer: basicfont or truetype")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("measurer", rootCmd.PersistentFlags().Lookup("measurer"))
}

func initConfig() {
	initErr = config.Init(configFile)
}

// newMeasurer returns the text measurer selected by name.
func newMeasurer(name string) (layout.TextMeasurer, error) {
	if name != config.MeasurerTrueType {
		return render.BasicMeasurer{}, nil
	}
	m, err := render.NewTrueTypeMeasurer()
	if err != nil {
		return nil, fmt.Errorf("truetype measurer: %w", err)
	}
	return m, nil
}

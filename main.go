package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ojwest/springscroll/internal/demo"
	"github.com/ojwest/springscroll/internal/logging"
	"github.com/ojwest/springscroll/spring"
)

var rootCmd = &cobra.Command{
	Use:   "springscroll [file]",
	Short: "Spring-animated scrolling, demonstrated on a document viewer",
	Long: "springscroll opens a document (or a built-in sample) in a viewer whose\n" +
		"viewport is animated by damped springs. Jump between sections and watch\n" +
		"the view glide, redirect mid-flight, and settle.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := demo.Config{
			Strength: viper.GetFloat64("strength"),
			Dampness: viper.GetFloat64("dampness"),
			FPS:      viper.GetInt("fps"),
		}
		if len(args) == 1 {
			cfg.File = args[0]
		}

		logger, cleanup, err := logging.New(viper.GetString("log"), viper.GetBool("debug"))
		if err != nil {
			return err
		}
		defer cleanup()

		model, err := demo.New(cfg, logger)
		if err != nil {
			return err
		}

		logger.Info("starting viewer",
			zap.Float64("strength", cfg.Strength),
			zap.Float64("dampness", cfg.Dampness),
			zap.Int("fps", cfg.FPS),
			zap.String("file", cfg.File))

		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.Float64("strength", spring.DefaultStrength, "spring stiffness")
	flags.Float64("dampness", spring.DefaultDampness, "spring damping coefficient")
	flags.Int("fps", 60, "animation frame rate")
	flags.String("log", "", "write a debug log to this file")
	flags.Bool("debug", false, "log at debug level")

	viper.SetEnvPrefix("SPRINGSCROLL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"SoilShear/internal/calc/report"
	"SoilShear/internal/calc/shear"
	"SoilShear/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "shearcli",
	Short: "Shear-strength estimation and Mohr envelope from soil index properties",
	Long: `Estimate cohesion and friction angle from FC, WL, IP, MC, SR and ROD,
then derive the Mohr circle for (sigma1, sigma3) and its tangent Coulomb envelope.

Models and defaults are read from the same configuration as the server
(.env, SOILSHEAR_CONFIG, SOILSHEAR_* variables).`,
	SilenceUsage: true,
}

// setup builds the calculator and plotter from configuration.
func setup() (*shear.Calculator, *report.Plotter, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	models, err := cfg.Table()
	if err != nil {
		return nil, nil, err
	}
	calc := shear.NewCalculator(models)
	calc.Stresses = cfg.Stresses()
	calc.Samples = cfg.Mohr.Samples
	return calc, &report.Plotter{FontPath: cfg.Render.FontPath, Title: cfg.Render.Title}, nil
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

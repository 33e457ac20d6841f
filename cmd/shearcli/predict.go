package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"SoilShear/internal/calc/report"
	"SoilShear/internal/calc/shear"
)

var predictFlags struct {
	soil, target            string
	fc, wl, ip, mc, sr, rod float64
	sigma1, sigma3          float64
	pdf                     string
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict c and phi for one sample and print the envelope parameters",
	Example: `  shearcli predict --soil argile --target uu --fc 30 --wl 40 --ip 15 --mc 20 --sr 80 --rod 1.6
  shearcli predict --soil sable --target cd --fc 10 --wl 20 --ip 5 --mc 12 --rod 1.8 --pdf mohr.pdf`,
	RunE: runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictFlags.soil, "soil", "argile", "soil type (argile, limons, marne, sable)")
	f.StringVar(&predictFlags.target, "target", "uu", "target test type (cu, uu, cd)")
	f.Float64Var(&predictFlags.fc, "fc", 30, "fines content FC (%)")
	f.Float64Var(&predictFlags.wl, "wl", 40, "liquid limit WL")
	f.Float64Var(&predictFlags.ip, "ip", 15, "plasticity index IP")
	f.Float64Var(&predictFlags.mc, "mc", 20, "moisture content MC (%)")
	f.Float64Var(&predictFlags.sr, "sr", 0, "degree of saturation SR (%)")
	f.Float64Var(&predictFlags.rod, "rod", 1.6, "dry density ROD (g/cm3)")
	f.Float64Var(&predictFlags.sigma1, "sigma1", 0, "major principal stress (kPa), configured default when unset")
	f.Float64Var(&predictFlags.sigma3, "sigma3", 0, "minor principal stress (kPa), configured default when unset")
	f.StringVar(&predictFlags.pdf, "pdf", "", "write the Mohr plot to this PDF file")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	calc, plotter, err := setup()
	if err != nil {
		return err
	}
	pf := predictFlags
	in := shear.Input{SoilType: pf.soil, TargetType: pf.target}
	in.FC, in.WL, in.IP, in.MC, in.ROD = &pf.fc, &pf.wl, &pf.ip, &pf.mc, &pf.rod
	flags := cmd.Flags()
	if flags.Changed("sr") {
		in.SR = &pf.sr
	}
	if flags.Changed("sigma1") {
		in.Sigma1 = &pf.sigma1
	}
	if flags.Changed("sigma3") {
		in.Sigma3 = &pf.sigma3
	}

	res, err := calc.Calculate(in)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)

	if pf.pdf == "" {
		return nil
	}
	f, err := os.Create(pf.pdf)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := plotter.PlotPDF(f, res.Mohr, report.DefaultLabels(res.Mohr)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "plot written to %s\n", pf.pdf)
	return nil
}

func printResult(w io.Writer, res shear.Result) {
	fmt.Fprintf(w, "soil=%s target=%s model=%s\n", res.Soil, res.Target, res.Model)
	fmt.Fprintf(w, "cohesion   %10.2f kPa\n", res.CohesionKPa)
	fmt.Fprintf(w, "friction   %10.1f deg\n", res.FrictionDeg)
	fmt.Fprintf(w, "sigma1/3   %10.2f / %.2f kPa\n", res.Mohr.Sigma1, res.Mohr.Sigma3)
	fmt.Fprintf(w, "centre     %10.2f kPa\n", res.Mohr.Centre)
	fmt.Fprintf(w, "radius     %10.2f kPa\n", res.Mohr.Radius)
	fmt.Fprintf(w, "tan(phi)   %10.4f\n", res.Mohr.Slope)
	fmt.Fprintf(w, "c_tan      %10.2f kPa\n", res.Mohr.CTan)
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"SoilShear/internal/calc/premium/importer"
)

var importOut string

var importCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Compute every row of a workbook (soil, target, FC, WL, IP, MC, SR, ROD, sigma1, sigma3)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, _, err := setup()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := importer.Import(calc, f)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "row\tsoil\ttarget\tmodel\tc (kPa)\tphi (deg)\tc_tan (kPa)")
		for i, r := range res.Results {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%.1f\t%.2f\n",
				res.Rows[i], r.Soil, r.Target, r.Model, r.CohesionKPa, r.FrictionDeg, r.Mohr.CTan)
		}
		tw.Flush()
		for _, s := range res.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "row %d skipped: %s\n", s.Row, s.Message)
		}

		if importOut == "" {
			return nil
		}
		out, err := os.Create(importOut)
		if err != nil {
			return err
		}
		defer out.Close()
		return importer.Export(out, res)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "write results to this xlsx file")
	rootCmd.AddCommand(importCmd)
}

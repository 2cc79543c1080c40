package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sozercan/npk-predictor/internal/form"
)

// newPredictCmd exposes one flag per input field. Flags left unset keep the
// field default; set values are clamped like form submissions.
func newPredictCmd() *cobra.Command {
	values := make([]float64, len(form.Fields))

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a single prediction and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := setup()
			if err != nil {
				return err
			}

			inputs := make(map[string]float64, len(form.Fields))
			for i, f := range form.Fields {
				inputs[f.Name] = values[i]
			}

			result, err := p.Predict(cmd.Context(), form.FromMap(inputs))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	for i, f := range form.Fields {
		cmd.Flags().Float64Var(&values[i], f.Name, f.Default,
			fmt.Sprintf("%s, between %g and %g", f.Label, f.Min, f.Max))
	}
	return cmd
}

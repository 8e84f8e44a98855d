package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/astrolabe/internal/ui"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Score the compatibility of two births",
	Long: `Builds both natal charts and compares them: synastry aspects, element,
modality, MBTI and Enneagram pairings, five category scores, and an overall
score with its band.`,
	Example: `  astrolabe compare \
    --name1 Rui --date1 1977-06-06 --time1 09:00 --city1 "Marinha Grande" --country1 Portugal \
    --name2 Kenji --date2 1990-05-13 --time2 15:30 --city2 Tokyo --country2 Japan`,
	RunE: runCompare,
}

func init() {
	birthFlags(compareCmd, "1")
	birthFlags(compareCmd, "2")
	compareCmd.Flags().StringP("output", "o", "", "write the report to this file")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	a, b := birthInput(cmd, "1"), birthInput(cmd, "2")
	out, _ := cmd.Flags().GetString("output")

	s, err := sessionFromConfig()
	if err != nil {
		return err
	}
	defer s.Close()

	s.printer.Info("Analyzing compatibility between " + a.Name + " and " + b.Name + "...")
	r, err := s.compare(cmd.Context(), a, b)
	if err != nil {
		return err
	}
	return s.emit(cmd.OutOrStdout(), out, r, func() string { return ui.CompatibilityReport(r) })
}


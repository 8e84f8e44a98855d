package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/ui"
)

var natalCmd = &cobra.Command{
	Use:   "natal",
	Short: "Build the natal chart for one birth",
	Long: `Builds a natal chart from a local birth date, clock time, and place.

The place is resolved through the gazetteer and the planetary positions are
read from the ephemeris table.`,
	Example: `  astrolabe natal --name Rui --date 1977-06-06 --time 09:00 --city "Marinha Grande" --country Portugal`,
	RunE:    runNatal,
}

func init() {
	birthFlags(natalCmd, "")
	natalCmd.Flags().StringP("output", "o", "", "write the report to this file")
	rootCmd.AddCommand(natalCmd)
}

func runNatal(cmd *cobra.Command, _ []string) error {
	in := birthInput(cmd, "")
	out, _ := cmd.Flags().GetString("output")

	s, err := sessionFromConfig()
	if err != nil {
		return err
	}
	defer s.Close()

	s.printer.Info("Generating natal chart for " + in.Name + "...")
	c, err := s.chart(cmd.Context(), in)
	if err != nil {
		return err
	}
	return s.emit(cmd.OutOrStdout(), out, c, func() string { return ui.NatalReport(c) })
}

// birthFlags registers the five birth flags, suffixed for commands that take
// more than one birth ("name1", "date1", ...).
func birthFlags(cmd *cobra.Command, suffix string) {
	f := cmd.Flags()
	f.String("name"+suffix, "", "person's name")
	f.String("date"+suffix, "", "birth date (YYYY-MM-DD)")
	f.String("time"+suffix, "", "local birth time (HH:MM, 24-hour)")
	f.String("city"+suffix, "", "birth city")
	f.String("country"+suffix, "", "birth country")
	for _, name := range []string{"name", "date", "time", "city", "country"} {
		_ = cmd.MarkFlagRequired(name + suffix)
	}
}

func birthInput(cmd *cobra.Command, suffix string) natal.BirthInput {
	f := cmd.Flags()
	var in natal.BirthInput
	in.Name, _ = f.GetString("name" + suffix)
	in.Date, _ = f.GetString("date" + suffix)
	in.Time, _ = f.GetString("time" + suffix)
	in.City, _ = f.GetString("city" + suffix)
	in.Country, _ = f.GetString("country" + suffix)
	return in
}

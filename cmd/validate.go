package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/astrolabe/internal/config"
	"github.com/papapumpkin/astrolabe/internal/ephemeris"
	"github.com/papapumpkin/astrolabe/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the ephemeris table and gazetteer for malformed entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return checkData(cfg, ui.New())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// checkData loads both tables and reports every problem in them. It
// returns errChecksFailed when anything was reported.
func checkData(cfg config.Config, p *ui.Printer) error {
	ok := true

	table, err := ephemeris.LoadTable(cfg.EphemerisFile)
	if err != nil {
		p.Problems(cfg.EphemerisFile, 0, []error{err})
		ok = false
	} else {
		problems := table.Check()
		p.Problems(cfg.EphemerisFile, len(table.Entries()), problems)
		ok = ok && len(problems) == 0
	}

	places, err := ephemeris.LoadGazetteer(cfg.GazetteerFile)
	if err != nil {
		p.Problems(cfg.GazetteerFile, 0, []error{err})
		ok = false
	} else {
		problems := places.Check()
		p.Problems(cfg.GazetteerFile, len(places.Places()), problems)
		ok = ok && len(problems) == 0
	}

	if !ok {
		return errChecksFailed
	}
	return nil
}

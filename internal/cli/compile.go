package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/spf13/cobra"
)

type compileReport struct {
	Spell   string         `json:"spell"`
	Actions int            `json:"actions"`
	Stats   map[string]int `json:"stats,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func newCompileCmd(opts *options, outW io.Writer, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "compile PATH...",
		Short: "Compile spells and report their stats",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(outW, args)
			if err != nil {
				return err
			}
			spells, err := a.LoadSpells(cmd.Context())
			if err != nil {
				return failed(err)
			}

			headers := []string{"SPELL", "ACTIONS"}
			for _, s := range model.Stats() {
				headers = append(headers, strings.ToUpper(s.String()))
			}
			headers = append(headers, "ERROR")

			var reports []compileReport
			var rows [][]string
			failures := 0
			for _, spell := range spells {
				report := compileReport{Spell: spell.Name}
				row := []string{spell.Name}

				prog, err := a.Compile(cmd.Context(), spell)
				if err != nil {
					failures++
					report.Error = err.Error()
					row = append(row, "-")
					for range model.Stats() {
						row = append(row, "-")
					}
				} else {
					report.Actions = prog.Len()
					report.Stats = prog.Metadata().Snapshot()
					row = append(row, strconv.Itoa(prog.Len()))
					for _, s := range model.Stats() {
						row = append(row, strconv.Itoa(prog.Stat(s)))
					}
				}
				reports = append(reports, report)
				rows = append(rows, append(row, report.Error))
			}

			if err := outputFn().Print(headers, rows, reports); err != nil {
				return failed(err)
			}
			if failures > 0 {
				return failed(fmt.Errorf("%d of %d spells failed to compile", failures, len(spells)))
			}
			return nil
		},
	}
}

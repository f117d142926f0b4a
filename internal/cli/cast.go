package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/spf13/cobra"
)

type castReport struct {
	Spell      string `json:"spell"`
	RunID      string `json:"run_id,omitempty"`
	State      string `json:"state"`
	Executed   int    `json:"executed"`
	Stopped    bool   `json:"stopped"`
	Suppressed int    `json:"suppressed"`
	Error      string `json:"error,omitempty"`
}

func newCastCmd(opts *options, outW io.Writer, outputFn func() *Output) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "cast PATH...",
		Short: "Compile and cast spells",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(outW, args)
			if err != nil {
				return err
			}
			if _, err := a.StartServer(); err != nil {
				return failed(err)
			}
			defer a.Close(cmd.Context())

			spells, err := a.LoadSpells(cmd.Context())
			if err != nil {
				return failed(err)
			}
			if name != "" {
				spells = filterSpells(spells, name)
				if len(spells) == 0 {
					return failed(fmt.Errorf("spell %q not found", name))
				}
			}

			var reports []castReport
			failures := 0
			for _, spell := range spells {
				report := castReport{Spell: spell.Name, State: "-"}
				run, err := a.Cast(cmd.Context(), spell, nil)
				if run != nil {
					report.RunID = run.ID.String()
					report.State = run.State.String()
					report.Executed = run.Executed
					report.Stopped = run.Stopped
					report.Suppressed = len(run.Suppressed)
				}
				if err != nil {
					failures++
					report.Error = err.Error()
				}
				reports = append(reports, report)
			}

			headers := []string{"SPELL", "STATE", "EXECUTED", "STOPPED", "SUPPRESSED", "ERROR"}
			rows := make([][]string, len(reports))
			for i, r := range reports {
				rows[i] = []string{r.Spell, r.State, strconv.Itoa(r.Executed), strconv.FormatBool(r.Stopped), strconv.Itoa(r.Suppressed), r.Error}
			}
			if err := outputFn().Print(headers, rows, reports); err != nil {
				return failed(err)
			}
			if failures > 0 {
				return failed(fmt.Errorf("%d of %d casts failed", failures, len(spells)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "spell", "", "Cast only the spell with this name.")
	return cmd
}

func filterSpells(spells []*model.Spell, name string) []*model.Spell {
	var out []*model.Spell
	for _, s := range spells {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

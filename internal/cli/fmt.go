package cli

import (
	"io"

	"github.com/specialistvlad/spellgrid/internal/hclspell"
	"github.com/spf13/cobra"
)

func newFmtCmd(opts *options, outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt PATH...",
		Short: "Print spells in canonical HCL form",
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
			if _, err := outW.Write(hclspell.Encode(spells...)); err != nil {
				return failed(err)
			}
			return nil
		},
	}
}

package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type pieceInfo struct {
	Key         string   `json:"key"`
	Type        string   `json:"type"`
	Kind        string   `json:"kind"`
	Params      []string `json:"params"`
	Description string   `json:"description"`
}

func newPiecesCmd(opts *options, outW io.Writer, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "pieces",
		Short: "List the registered pieces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(outW, nil)
			if err != nil {
				return err
			}

			var infos []pieceInfo
			var rows [][]string
			for _, key := range a.Registry().Keys() {
				bp, _ := a.Registry().Lookup(key)
				info := pieceInfo{Key: bp.Key, Type: bp.Type.String(), Kind: bp.Kind.String(), Description: bp.Description}
				for _, p := range bp.Params {
					name := p.Name
					if p.CanDisable {
						name += "?"
					}
					info.Params = append(info.Params, name)
				}
				infos = append(infos, info)
				rows = append(rows, []string{info.Key, info.Type, info.Kind, strings.Join(info.Params, ","), info.Description})
			}

			if err := outputFn().Print([]string{"KEY", "TYPE", "KIND", "PARAMS", "DESCRIPTION"}, rows, infos); err != nil {
				return failed(err)
			}
			return nil
		},
	}
}

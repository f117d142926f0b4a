package hclspell

import (
	"sort"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Encode writes spells in the format Load reads. Pieces are written column
// by column, and sides and attributes in name order, so the output is stable.
func Encode(spells ...*model.Spell) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	for i, s := range spells {
		if i > 0 {
			root.AppendNewline()
		}
		block := root.AppendNewBlock("spell", []string{s.Name}).Body()
		if s.Grid == nil {
			continue
		}
		w, h := s.Grid.Size()
		if w != model.DefaultSize || h != model.DefaultSize {
			block.SetAttributeValue("width", cty.NumberIntVal(int64(w)))
			block.SetAttributeValue("height", cty.NumberIntVal(int64(h)))
		}
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if p := s.Grid.PieceAt(x, y); p != nil {
					encodePiece(block, p)
				}
			}
		}
	}
	return f.Bytes()
}

func encodePiece(parent *hclwrite.Body, p *model.Piece) {
	body := parent.AppendNewBlock("piece", []string{p.Key}).Body()
	body.SetAttributeValue("x", cty.NumberIntVal(int64(p.X)))
	body.SetAttributeValue("y", cty.NumberIntVal(int64(p.Y)))
	if p.Comment != "" {
		body.SetAttributeValue("comment", cty.StringVal(p.Comment))
	}

	sides := make(map[string]cty.Value)
	for _, param := range p.Params() {
		if s := p.Side(param); s.IsEnabled() {
			sides[param.Name] = cty.StringVal(s.String())
		}
	}
	if len(sides) > 0 {
		body.SetAttributeValue("sides", cty.ObjectVal(sides))
	}

	names := make([]string, 0, len(p.Attrs))
	for name := range p.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body.SetAttributeValue(name, p.Attrs[name])
	}
}

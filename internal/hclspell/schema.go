package hclspell

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of a spell file.
type fileRoot struct {
	Spells []*spellBlock `hcl:"spell,block"`
	Remain hcl.Body      `hcl:",remain"`
}

type spellBlock struct {
	Name   string        `hcl:"name,label"`
	Width  *int          `hcl:"width,optional"`
	Height *int          `hcl:"height,optional"`
	Pieces []*pieceBlock `hcl:"piece,block"`
}

type pieceBlock struct {
	Key     string            `hcl:"key,label"`
	X       int               `hcl:"x"`
	Y       int               `hcl:"y"`
	Comment *string           `hcl:"comment,optional"`
	Sides   map[string]string `hcl:"sides,optional"`
	// Remain holds the piece attributes.
	Remain hcl.Body `hcl:",remain"`
}

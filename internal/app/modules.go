package app

import (
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/specialistvlad/spellgrid/modules/catch"
	"github.com/specialistvlad/spellgrid/modules/connector"
	"github.com/specialistvlad/spellgrid/modules/constant"
	"github.com/specialistvlad/spellgrid/modules/operator"
	"github.com/specialistvlad/spellgrid/modules/trick"
)

// coreModules is the definitive list of all piece modules that are compiled
// into the spellgrid binary.
var coreModules = []registry.Module{
	&constant.Module{},
	&operator.Module{},
	&trick.Module{},
	&catch.Module{},
	&connector.Module{},
}

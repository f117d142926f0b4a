// Package hclspell reads and writes spells in HCL.
//
// A spell file holds any number of spell blocks. Every piece block names a
// registered piece key, its cell, and the sides its params connect through;
// any other attribute is a piece attribute, converted to the type the
// piece's blueprint declares:
//
//	spell "sum" {
//	  piece "trick_debug" {
//	    x     = 4
//	    y     = 4
//	    sides = { target = "left" }
//	  }
//	  piece "constant_number" {
//	    x     = 3
//	    y     = 4
//	    value = 2
//	  }
//	}
//
// Sides accept top, bottom, left, right and off, plus the compass aliases
// north, south, west and east.
package hclspell

package spellhelp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestToNumber(t *testing.T) {
	testCases := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{name: "float64", in: 2.5, want: 2.5, wantOK: true},
		{name: "int", in: 3, want: 3, wantOK: true},
		{name: "cty number", in: cty.NumberIntVal(7), want: 7, wantOK: true},
		{name: "cty null", in: cty.NullVal(cty.Number)},
		{name: "cty string", in: cty.StringVal("x")},
		{name: "string", in: "4"},
		{name: "nil", in: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToNumber(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

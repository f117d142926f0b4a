package executor

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// formatValueForLogs converts a value to its loggable representation.
// cty values are unwrapped to Go primitives where possible.
func formatValueForLogs(v any) any {
	val, ok := v.(cty.Value)
	if !ok {
		return v
	}
	if val.IsNull() || !val.IsKnown() {
		return nil
	}
	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Bool:
		return val.True()
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return fmt.Sprintf("[unloggable cty.Value: %v]", err)
		}
		return f
	}
	return val.GoString()
}

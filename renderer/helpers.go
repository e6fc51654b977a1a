package renderer

import "fmt"

// Format renders a single table value for display. Absent values (nil
// pointers unwrapped upstream to a nil any) render as a dash, domain types
// render through their Stringer.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case fmt.Stringer:
		return x.String()
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Package palette holds the fixed chart palette shared by every report that
// carries display colors.
package palette

// colors is the 12-color chart palette. Colors are assigned positionally:
// row N of a report gets colors[N mod 12]. The mapping is not stable per
// category across requests; the dashboard accepts that.
var colors = [...]string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B", "#8B5CF6",
	"#EC4899", "#06B6D4", "#84CC16", "#F97316", "#6366F1",
	"#14B8A6", "#F43F5E",
}

// Color returns the palette color for the given row index.
func Color(index int) string {
	return colors[index%len(colors)]
}

// Size returns the number of colors in the palette.
func Size() int {
	return len(colors)
}

package components

import (
	"fmt"
	"strings"

	"github.com/saanvi/preppal/internal/question"
)

var shapeGlyphs = map[string]string{
	"circle":   "●",
	"square":   "■",
	"triangle": "▲",
	"star":     "★",
	"hexagon":  "⬢",
}

var sizeWords = map[int]string{
	1: "tiny",
	2: "small",
	3: "medium",
	4: "large",
	5: "large",
	6: "huge",
}

// DescribeShapeSet renders one visual option as a compact textual
// description. Shape questions cannot be drawn in every terminal, so
// each option reads like "▲▲ two small striped triangles, rotated 45°".
func DescribeShapeSet(set []question.VisualChoice) string {
	if len(set) == 0 {
		return ""
	}

	first := set[0]
	glyph := shapeGlyphs[first.Kind]
	if glyph == "" {
		glyph = "?"
	}

	size := sizeWords[first.Size]
	if size == "" {
		size = "medium"
	}

	name := first.Kind
	if len(set) > 1 {
		name += "s"
	}

	desc := fmt.Sprintf("%s %s %s %s", strings.Repeat(glyph, len(set)),
		countWord(len(set)), size, name)
	if first.Fill != "" {
		desc = fmt.Sprintf("%s %s %s %s %s", strings.Repeat(glyph, len(set)),
			countWord(len(set)), size, first.Fill, name)
	}
	if first.Rotation != 0 {
		desc += fmt.Sprintf(", rotated %d°", first.Rotation)
	}
	return desc
}

func countWord(n int) string {
	switch n {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "three"
	case 4:
		return "four"
	}
	return fmt.Sprintf("%d", n)
}

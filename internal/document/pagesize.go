package document

import (
	"fmt"
	"strings"
)

const pxPerMM = 96.0 / 25.4

func mm(w, h float64) Size { return Size{Width: w * pxPerMM, Height: h * pxPerMM} }

func inch(w, h float64) Size { return Size{Width: w * 96, Height: h * 96} }

var pageSizes = map[string]Size{
	"a6":      mm(105, 148),
	"a5":      mm(148, 210),
	"a4":      mm(210, 297),
	"a3":      mm(297, 420),
	"a2":      mm(420, 594),
	"a1":      mm(594, 841),
	"a0":      mm(841, 1189),
	"letter":  inch(8.5, 11),
	"legal":   inch(8.5, 14),
	"tabloid": inch(11, 17),
}

// PageSizeByName looks up a named page format, case-insensitively, in
// portrait orientation.
func PageSizeByName(name string) (Size, error) {
	s, ok := pageSizes[strings.ToLower(name)]
	if !ok {
		return Size{}, fmt.Errorf("unknown page size %q", name)
	}
	return s, nil
}

// Landscape returns the size with its longer side horizontal.
func (s Size) Landscape() Size {
	if s.Width >= s.Height {
		return s
	}
	return Size{Width: s.Height, Height: s.Width}
}

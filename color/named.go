package color

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

// Named looks up an SVG 1.1 color keyword such as "skyblue".
func Named(name string) (Color, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown color name %q", ErrInvalidFormat, name)
	}
	return ARGB(c.A, c.R, c.G, c.B), nil
}

// Nearest returns the color keyword closest to m in Lab space.
func Nearest(m Model) (string, Color) {
	var (
		best     string
		bestC    Color
		bestDist = math.Inf(1)
	)
	// colornames.Names is sorted, so ties resolve alphabetically.
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		candidate := ARGB(c.A, c.R, c.G, c.B)
		if d := Distance(m, candidate); d < bestDist {
			best, bestC, bestDist = name, candidate, d
		}
	}
	return best, bestC
}

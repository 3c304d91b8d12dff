// Package export renders traced branches to standalone files.
package export

import (
	"fmt"
	"os"
	"strings"
)

// ResponseDiagramSVG renders the branch as a response diagram: lambda on the
// horizontal axis, solution norm on the vertical axis, accepted states joined
// by a polyline with a dot per state.
func ResponseDiagramSVG(lmbdas, norms []float64, width, height int) string {
	if len(lmbdas) < 2 || len(lmbdas) != len(norms) {
		return ""
	}

	minX, maxX := lmbdas[0], lmbdas[0]
	minY, maxY := norms[0], norms[0]
	for i := range lmbdas {
		if lmbdas[i] < minX {
			minX = lmbdas[i]
		}
		if lmbdas[i] > maxX {
			maxX = lmbdas[i]
		}
		if norms[i] < minY {
			minY = norms[i]
		}
		if norms[i] > maxY {
			maxY = norms[i]
		}
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	const margin = 20.0
	sx := (float64(width) - 2*margin) / (maxX - minX)
	sy := (float64(height) - 2*margin) / (maxY - minY)
	px := func(l float64) float64 { return margin + (l-minX)*sx }
	py := func(n float64) float64 { return float64(height) - margin - (n-minY)*sy }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(`<polyline fill="none" stroke="#00ff88" stroke-width="1.5" points="`)
	for i := range lmbdas {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", px(lmbdas[i]), py(norms[i])))
	}
	sb.WriteString("\"/>\n<g fill=\"#00ff88\">\n")
	for i := range lmbdas {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"2\"/>\n", px(lmbdas[i]), py(norms[i])))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteResponseDiagram writes the SVG response diagram to path.
func WriteResponseDiagram(path string, lmbdas, norms []float64, width, height int) error {
	svg := ResponseDiagramSVG(lmbdas, norms, width, height)
	if svg == "" {
		return fmt.Errorf("export: branch too short to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

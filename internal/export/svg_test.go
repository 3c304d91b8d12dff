package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResponseDiagramSVG(t *testing.T) {
	lmbdas := []float64{0, 0.5, 1.0, 0.8}
	norms := []float64{0, 0.4, 1.2, 1.6}

	svg := ResponseDiagramSVG(lmbdas, norms, 640, 480)
	if svg == "" {
		t.Fatal("empty output")
	}
	if !strings.HasPrefix(svg, "<?xml") {
		t.Fatal("missing XML declaration")
	}
	if !strings.Contains(svg, `width="640" height="480"`) {
		t.Fatal("canvas size not emitted")
	}
	if !strings.Contains(svg, "<polyline") {
		t.Fatal("missing polyline")
	}
	if got := strings.Count(svg, "<circle"); got != len(lmbdas) {
		t.Fatalf("got %d dots, want %d", got, len(lmbdas))
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Fatal("unterminated document")
	}
}

func TestResponseDiagramSVGDegenerateRange(t *testing.T) {
	// Constant lambda must not divide by zero.
	svg := ResponseDiagramSVG([]float64{0.5, 0.5, 0.5}, []float64{0, 1, 2}, 100, 100)
	if svg == "" {
		t.Fatal("empty output for constant lambda")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Fatal("non-finite coordinates emitted")
	}
}

func TestResponseDiagramSVGTooShort(t *testing.T) {
	if svg := ResponseDiagramSVG([]float64{1}, []float64{1}, 100, 100); svg != "" {
		t.Fatal("want empty output for a single point")
	}
	if svg := ResponseDiagramSVG([]float64{1, 2}, []float64{1}, 100, 100); svg != "" {
		t.Fatal("want empty output for mismatched lengths")
	}
}

func TestResponseDiagramSVGPointsInsideCanvas(t *testing.T) {
	lmbdas := []float64{-2, 0, 3}
	norms := []float64{10, 0, 5}
	svg := ResponseDiagramSVG(lmbdas, norms, 200, 150)

	for _, line := range strings.Split(svg, "\n") {
		if !strings.HasPrefix(line, "<circle") {
			continue
		}
		var cx, cy, r float64
		if _, err := fmt.Sscanf(line, `<circle cx="%f" cy="%f" r="%f"/>`, &cx, &cy, &r); err != nil {
			t.Fatalf("unparseable dot %q: %v", line, err)
		}
		if cx < 0 || cx > 200 || cy < 0 || cy > 150 {
			t.Fatalf("dot outside canvas: %q", line)
		}
	}
}

func TestWriteResponseDiagram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch.svg")
	if err := WriteResponseDiagram(path, []float64{0, 1}, []float64{0, 1}, 100, 100); err != nil {
		t.Fatalf("WriteResponseDiagram: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatal("file does not contain SVG markup")
	}
}

func TestWriteResponseDiagramTooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch.svg")
	if err := WriteResponseDiagram(path, []float64{0}, []float64{0}, 100, 100); err == nil {
		t.Fatal("want error for branch too short to plot")
	}
}

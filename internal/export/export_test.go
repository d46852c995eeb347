package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/easelhq/easel/internal/models"
)

func rect(id string, x, y, w, h float64) models.Element {
	return models.Element{
		ID: id, Type: models.TypeRectangle,
		X: x, Y: y, Width: w, Height: h,
		StrokeColor: "#1e1e1e", BackgroundColor: "transparent", StrokeWidth: 2,
	}
}

func TestFilename(t *testing.T) {
	name := Filename("png")
	if !strings.HasPrefix(name, "easel-") || !strings.HasSuffix(name, ".png") {
		t.Errorf("name = %q", name)
	}
	if name == "easel-.png" {
		t.Error("filename carries no timestamp")
	}
}

func TestRasterEmptySceneUsesBlankCanvas(t *testing.T) {
	data, err := Raster(nil, models.AppState{}, nil)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Errorf("blank canvas = %v, want 640x480", img.Bounds())
	}
}

func TestRasterSizedToContentWithPadding(t *testing.T) {
	els := []models.Element{rect("a", 100, 200, 50, 30)}
	data, err := Raster(els, models.AppState{ViewBackgroundColor: "#ffffff"}, nil)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	// Content 50x30 plus 20px padding on each side.
	if img.Bounds().Dx() != 90 || img.Bounds().Dy() != 70 {
		t.Errorf("canvas = %v, want 90x70", img.Bounds())
	}
}

func TestRasterAllShapeTypes(t *testing.T) {
	els := []models.Element{
		rect("r", 0, 0, 40, 40),
		{ID: "e", Type: models.TypeEllipse, X: 50, Y: 0, Width: 40, Height: 40, StrokeColor: "#e03131", BackgroundColor: "#ffc9c9", StrokeWidth: 1},
		{ID: "d", Type: models.TypeDiamond, X: 100, Y: 0, Width: 40, Height: 40, StrokeColor: "#2f9e44", StrokeWidth: 2, Angle: 0.5},
		{ID: "l", Type: models.TypeLine, X: 0, Y: 50, Points: []models.Point{{X: 0, Y: 0}, {X: 40, Y: 20}}, StrokeColor: "#1971c2", StrokeWidth: 2},
		{ID: "a", Type: models.TypeArrow, X: 0, Y: 80, Points: []models.Point{{X: 0, Y: 0}, {X: 40, Y: 0}}, StrokeColor: "#1e1e1e", StrokeWidth: 2},
		{ID: "t", Type: models.TypeText, X: 0, Y: 110, Width: 100, Height: 20, Text: "hello", FontSize: 16, StrokeColor: "#1e1e1e"},
	}
	data, err := Raster(els, models.AppState{}, nil)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
}

func TestVectorNodesInStackingOrder(t *testing.T) {
	els := []models.Element{
		rect("bottom", 0, 0, 10, 10),
		{ID: "top", Type: models.TypeEllipse, X: 5, Y: 5, Width: 10, Height: 10, StrokeColor: "#000000", StrokeWidth: 1},
	}
	data, err := Vector(els, models.AppState{ViewBackgroundColor: "#fafafa"}, nil)
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	svg := string(data)

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("not standalone svg: %.60s", svg)
	}
	if !strings.Contains(svg, `fill="#fafafa"`) {
		t.Error("background rect missing")
	}
	ri := strings.Index(svg, `<rect x="0"`)
	ei := strings.Index(svg, "<ellipse")
	if ri < 0 || ei < 0 || ri > ei {
		t.Errorf("stacking order wrong: rect@%d ellipse@%d", ri, ei)
	}
}

func TestVectorEscapesText(t *testing.T) {
	els := []models.Element{{
		ID: "t", Type: models.TypeText, Text: `a <b> & "c"`, FontSize: 16,
		X: 0, Y: 0, Width: 100, Height: 20, StrokeColor: "#1e1e1e",
	}}
	data, err := Vector(els, models.AppState{}, nil)
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	svg := string(data)
	if strings.Contains(svg, "<b>") {
		t.Error("text content not escaped")
	}
	if !strings.Contains(svg, "a &lt;b&gt; &amp;") {
		t.Errorf("escaped text missing: %s", svg)
	}
}

func TestVectorTransparentBackgroundNotFilled(t *testing.T) {
	data, err := Vector([]models.Element{rect("a", 0, 0, 10, 10)}, models.AppState{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<rect x="0" y="0" width="10" height="10" fill="none"`) {
		t.Errorf("transparent background should render fill=none:\n%s", data)
	}
}

func TestVectorRotation(t *testing.T) {
	el := rect("a", 0, 0, 10, 10)
	el.Angle = 0.5
	data, err := Vector([]models.Element{el}, models.AppState{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, `transform="rotate(`) || !strings.Contains(svg, ` 5 5)"`) {
		t.Errorf("rotation transform missing:\n%s", svg)
	}
}

func TestVectorRotatedPolylineCarriesTransform(t *testing.T) {
	el := models.Element{
		ID: "a", Type: models.TypeArrow, X: 0, Y: 0, Width: 40, Height: 20,
		Points:      []models.Point{{X: 0, Y: 0}, {X: 40, Y: 20}},
		StrokeColor: "#1e1e1e", StrokeWidth: 2, Angle: 0.5,
	}
	data, err := Vector([]models.Element{el}, models.AppState{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	start := strings.Index(svg, "<polyline")
	if start < 0 {
		t.Fatalf("no polyline node:\n%s", svg)
	}
	node := svg[start : start+strings.Index(svg[start:], "/>")]
	if !strings.Contains(node, `transform="rotate(`) || !strings.Contains(node, ` 20 10)"`) {
		t.Errorf("rotated polyline lost its transform: %s", node)
	}
}

func TestVectorOpacity(t *testing.T) {
	el := rect("a", 0, 0, 10, 10)
	el.Opacity = 50
	data, err := Vector([]models.Element{el}, models.AppState{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `opacity="0.5"`) {
		t.Errorf("opacity attribute missing:\n%s", data)
	}
}

func TestBounds(t *testing.T) {
	els := []models.Element{
		rect("a", 10, 20, 30, 40),
		rect("b", -5, 0, 10, 10),
	}
	minX, minY, w, h := bounds(els)
	if minX != -5 || minY != 0 {
		t.Errorf("min = (%g, %g), want (-5, 0)", minX, minY)
	}
	// Extent 45x60 plus 20 padding each side.
	if w != 85 || h != 100 {
		t.Errorf("size = %gx%g, want 85x100", w, h)
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b int
		ok      bool
	}{
		{"#ffffff", 255, 255, 255, true},
		{"#1e1e1e", 30, 30, 30, true},
		{"fff", 255, 255, 255, true},
		{"#abc", 170, 187, 204, true},
		{"transparent", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}
	for _, c := range cases {
		r, g, b, ok := parseHex(c.in)
		if ok != c.ok || r != c.r || g != c.g || b != c.b {
			t.Errorf("parseHex(%q) = %d,%d,%d,%v; want %d,%d,%d,%v",
				c.in, r, g, b, ok, c.r, c.g, c.b, c.ok)
		}
	}
}

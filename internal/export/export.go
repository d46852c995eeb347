// Package export converts a captured scene into downloadable image
// artifacts. It is stateless: failures are reported to the caller and
// never touch session state.
package export

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"math"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/models"
)

const (
	padding = 20.0
	// Canvas size used when exporting an empty scene.
	blankW = 640.0
	blankH = 480.0
)

// Filename returns a timestamp-bearing download name with the given
// extension (without dot).
func Filename(ext string) string {
	return fmt.Sprintf("easel-%d.%s", time.Now().UnixMilli(), ext)
}

// Raster renders the scene to a PNG image.
func Raster(elements []models.Element, state models.AppState, files map[string]models.BinaryFile) ([]byte, error) {
	minX, minY, w, h := bounds(elements)

	dc := gg.NewContext(int(math.Ceil(w)), int(math.Ceil(h)))
	dc.SetHexColor(orDefault(state.ViewBackgroundColor, "#ffffff"))
	dc.Clear()
	dc.Translate(padding-minX, padding-minY)

	for _, el := range elements {
		if err := drawElement(dc, el, files); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: encode png: %v", apperr.ErrExport, err)
	}
	return buf.Bytes(), nil
}

func drawElement(dc *gg.Context, el models.Element, files map[string]models.BinaryFile) error {
	if el.Angle != 0 {
		dc.Push()
		dc.RotateAbout(el.Angle, el.X+el.Width/2, el.Y+el.Height/2)
		defer dc.Pop()
	}

	switch el.Type {
	case models.TypeRectangle:
		dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
		fillAndStroke(dc, el)

	case models.TypeEllipse:
		dc.DrawEllipse(el.X+el.Width/2, el.Y+el.Height/2, el.Width/2, el.Height/2)
		fillAndStroke(dc, el)

	case models.TypeDiamond:
		dc.MoveTo(el.X+el.Width/2, el.Y)
		dc.LineTo(el.X+el.Width, el.Y+el.Height/2)
		dc.LineTo(el.X+el.Width/2, el.Y+el.Height)
		dc.LineTo(el.X, el.Y+el.Height/2)
		dc.ClosePath()
		fillAndStroke(dc, el)

	case models.TypeLine, models.TypeArrow, models.TypeFreedraw:
		pts := el.Points
		if len(pts) < 2 {
			return nil
		}
		dc.MoveTo(el.X+pts[0].X, el.Y+pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(el.X+p.X, el.Y+p.Y)
		}
		setColor(dc, el.StrokeColor, el.Opacity)
		dc.SetLineWidth(el.StrokeWidth)
		dc.Stroke()
		if el.Type == models.TypeArrow {
			drawArrowhead(dc, el)
		}

	case models.TypeText:
		setColor(dc, el.StrokeColor, el.Opacity)
		size := el.FontSize
		if size <= 0 {
			size = 16
		}
		dc.DrawString(el.Text, el.X, el.Y+size)

	case models.TypeImage:
		f, ok := files[el.FileID]
		if !ok {
			return nil
		}
		img, _, err := image.Decode(bytes.NewReader(f.Data))
		if err != nil {
			return fmt.Errorf("%w: decode image %s: %v", apperr.ErrExport, el.FileID, err)
		}
		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return nil
		}
		dc.Push()
		dc.Translate(el.X, el.Y)
		dc.Scale(el.Width/float64(b.Dx()), el.Height/float64(b.Dy()))
		dc.DrawImage(img, 0, 0)
		dc.Pop()
	}
	return nil
}

// fillAndStroke fills the current path when the element carries a
// non-transparent background, then strokes its outline. Hachure and
// cross-hatch fill styles render solid; the sketchy look is a canvas
// affordance, not part of the persisted geometry.
func fillAndStroke(dc *gg.Context, el models.Element) {
	if filled(el.BackgroundColor) {
		setColor(dc, el.BackgroundColor, el.Opacity)
		dc.FillPreserve()
	}
	setColor(dc, el.StrokeColor, el.Opacity)
	dc.SetLineWidth(el.StrokeWidth)
	dc.Stroke()
}

func drawArrowhead(dc *gg.Context, el models.Element) {
	pts := el.Points
	tip := models.Point{X: el.X + pts[len(pts)-1].X, Y: el.Y + pts[len(pts)-1].Y}
	prev := models.Point{X: el.X + pts[len(pts)-2].X, Y: el.Y + pts[len(pts)-2].Y}
	angle := math.Atan2(tip.Y-prev.Y, tip.X-prev.X)
	size := 6 + 2*el.StrokeWidth
	for _, off := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		dc.MoveTo(tip.X, tip.Y)
		dc.LineTo(tip.X+size*math.Cos(angle+off), tip.Y+size*math.Sin(angle+off))
	}
	setColor(dc, el.StrokeColor, el.Opacity)
	dc.SetLineWidth(el.StrokeWidth)
	dc.Stroke()
}

// Vector renders the scene to standalone SVG markup, one shape node per
// element in stacking order.
func Vector(elements []models.Element, state models.AppState, files map[string]models.BinaryFile) ([]byte, error) {
	minX, minY, w, h := bounds(elements)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="%g %g %g %g">`+"\n",
		w, h, minX-padding, minY-padding, w, h)
	fmt.Fprintf(&sb, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
		minX-padding, minY-padding, w, h, orDefault(state.ViewBackgroundColor, "#ffffff"))

	for _, el := range elements {
		writeSVGElement(&sb, el, files)
	}
	sb.WriteString("</svg>\n")
	return []byte(sb.String()), nil
}

func writeSVGElement(sb *strings.Builder, el models.Element, files map[string]models.BinaryFile) {
	var transform string
	if el.Angle != 0 {
		transform = fmt.Sprintf(` transform="rotate(%g %g %g)"`,
			el.Angle*180/math.Pi, el.X+el.Width/2, el.Y+el.Height/2)
	}
	attrs := svgStyle(el) + transform

	switch el.Type {
	case models.TypeRectangle:
		fmt.Fprintf(sb, `<rect x="%g" y="%g" width="%g" height="%g"%s/>`+"\n",
			el.X, el.Y, el.Width, el.Height, attrs)

	case models.TypeEllipse:
		fmt.Fprintf(sb, `<ellipse cx="%g" cy="%g" rx="%g" ry="%g"%s/>`+"\n",
			el.X+el.Width/2, el.Y+el.Height/2, el.Width/2, el.Height/2, attrs)

	case models.TypeDiamond:
		fmt.Fprintf(sb, `<polygon points="%g,%g %g,%g %g,%g %g,%g"%s/>`+"\n",
			el.X+el.Width/2, el.Y,
			el.X+el.Width, el.Y+el.Height/2,
			el.X+el.Width/2, el.Y+el.Height,
			el.X, el.Y+el.Height/2, attrs)

	case models.TypeLine, models.TypeArrow, models.TypeFreedraw:
		if len(el.Points) < 2 {
			return
		}
		pts := make([]string, len(el.Points))
		for i, p := range el.Points {
			pts[i] = fmt.Sprintf("%g,%g", el.X+p.X, el.Y+p.Y)
		}
		fmt.Fprintf(sb, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%g"%s%s/>`+"\n",
			strings.Join(pts, " "), el.StrokeColor, el.StrokeWidth, svgOpacity(el), transform)

	case models.TypeText:
		size := el.FontSize
		if size <= 0 {
			size = 16
		}
		var esc bytes.Buffer
		_ = xml.EscapeText(&esc, []byte(el.Text))
		fmt.Fprintf(sb, `<text x="%g" y="%g" font-size="%g" fill="%s"%s%s>%s</text>`+"\n",
			el.X, el.Y+size, size, el.StrokeColor, svgOpacity(el), transform, esc.String())

	case models.TypeImage:
		f, ok := files[el.FileID]
		if !ok {
			return
		}
		fmt.Fprintf(sb, `<image x="%g" y="%g" width="%g" height="%g" href="data:%s;base64,%s"%s/>`+"\n",
			el.X, el.Y, el.Width, el.Height, f.MimeType, base64.StdEncoding.EncodeToString(f.Data), transform)
	}
}

func svgStyle(el models.Element) string {
	fill := "none"
	if filled(el.BackgroundColor) {
		fill = el.BackgroundColor
	}
	return fmt.Sprintf(` fill="%s" stroke="%s" stroke-width="%g"`, fill, el.StrokeColor, el.StrokeWidth) + svgOpacity(el)
}

func svgOpacity(el models.Element) string {
	if el.Opacity > 0 && el.Opacity < 100 {
		return fmt.Sprintf(` opacity="%g"`, el.Opacity/100)
	}
	return ""
}

// bounds returns the top-left corner of the scene's bounding box and the
// padded output dimensions.
func bounds(elements []models.Element) (minX, minY, w, h float64) {
	if len(elements) == 0 {
		return 0, 0, blankW, blankH
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, el := range elements {
		x0, y0, x1, y1 := el.X, el.Y, el.X+el.Width, el.Y+el.Height
		for _, p := range el.Points {
			x1 = math.Max(x1, el.X+p.X)
			y1 = math.Max(y1, el.Y+p.Y)
			x0 = math.Min(x0, el.X+p.X)
			y0 = math.Min(y0, el.Y+p.Y)
		}
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	return minX, minY, maxX - minX + 2*padding, maxY - minY + 2*padding
}

func filled(background string) bool {
	return background != "" && background != "transparent" && background != "none"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func setColor(dc *gg.Context, hex string, opacity float64) {
	r, g, b, ok := parseHex(hex)
	if !ok {
		r, g, b = 0x1e, 0x1e, 0x1e
	}
	a := 255
	if opacity > 0 && opacity < 100 {
		a = int(opacity / 100 * 255)
	}
	dc.SetRGBA255(r, g, b, a)
}

func parseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(s, "#")
	var err error
	switch len(s) {
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	default:
		return 0, 0, 0, false
	}
	return r, g, b, err == nil
}

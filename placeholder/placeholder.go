// Package placeholder renders solid-colour placeholder images with a
// centred caption, in the style of via.placeholder.com.
package placeholder

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// MaxDimension bounds width and height to keep rendering cheap.
	MaxDimension = 2000
	maxTextRunes = 80
	jpegQuality  = 80
)

// ErrInvalidSpec is returned for malformed sizes or colours.
var ErrInvalidSpec = errors.New("placeholder: invalid spec")

// Spec describes one placeholder image.
type Spec struct {
	Width, Height int
	Background    color.RGBA
	Foreground    color.RGBA
	Text          string
}

// Parse builds a Spec from URL parts: size "800x400" (or "800" for a
// square), background and foreground as 3 or 6 digit hex. An empty text
// defaults to the size, e.g. "800 x 400".
func Parse(size, bg, fg, text string) (Spec, error) {
	w, h, err := parseSize(size)
	if err != nil {
		return Spec{}, err
	}
	back, err := parseHex(bg)
	if err != nil {
		return Spec{}, err
	}
	fore, err := parseHex(fg)
	if err != nil {
		return Spec{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = fmt.Sprintf("%d x %d", w, h)
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		text = string([]rune(text)[:maxTextRunes-3]) + "..."
	}
	return Spec{Width: w, Height: h, Background: back, Foreground: fore, Text: text}, nil
}

func parseSize(size string) (int, int, error) {
	ws, hs, found := strings.Cut(strings.ToLower(size), "x")
	if !found {
		hs = ws
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: size %q", ErrInvalidSpec, size)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: size %q", ErrInvalidSpec, size)
	}
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return 0, 0, fmt.Errorf("%w: size %q out of range", ErrInvalidSpec, size)
	}
	return w, h, nil
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: colour %q", ErrInvalidSpec, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: colour %q", ErrInvalidSpec, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Draw renders spec into a new image. The caption is drawn with the 7x13
// bitmap face and scaled up to fill roughly a third of the height.
func Draw(spec Spec) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(spec.Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	textW := font.MeasureString(face, spec.Text).Ceil()
	textH := face.Height
	if textW == 0 {
		return dst
	}

	caption := image.NewRGBA(image.Rect(0, 0, textW, textH))
	d := &font.Drawer{
		Dst:  caption,
		Src:  image.NewUniform(spec.Foreground),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(spec.Text)

	scale := float64(spec.Width) * 0.8 / float64(textW)
	if s := float64(spec.Height) * 0.3 / float64(textH); s < scale {
		scale = s
	}
	w := int(float64(textW) * scale)
	h := int(float64(textH) * scale)
	if w < 1 || h < 1 {
		return dst
	}
	x := (spec.Width - w) / 2
	y := (spec.Height - h) / 2
	draw.ApproxBiLinear.Scale(dst, image.Rect(x, y, x+w, y+h), caption, caption.Bounds(), draw.Over, nil)
	return dst
}

// Encode writes spec as a JPEG to w.
func Encode(w io.Writer, spec Spec) error {
	if err := jpeg.Encode(w, Draw(spec), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

package placeholder

import (
	"bytes"
	"errors"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	spec, err := Parse("800x400", "0a192f", "00ff88", "Hello")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if spec.Width != 800 || spec.Height != 400 {
		t.Errorf("size = %dx%d", spec.Width, spec.Height)
	}
	if spec.Background != (color.RGBA{R: 0x0a, G: 0x19, B: 0x2f, A: 0xff}) {
		t.Errorf("Background = %v", spec.Background)
	}
	if spec.Foreground != (color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}) {
		t.Errorf("Foreground = %v", spec.Foreground)
	}
	if spec.Text != "Hello" {
		t.Errorf("Text = %q", spec.Text)
	}
}

func TestParseDefaults(t *testing.T) {
	spec, err := Parse("300", "#fff", "000", "  ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if spec.Width != 300 || spec.Height != 300 {
		t.Errorf("square size = %dx%d", spec.Width, spec.Height)
	}
	if spec.Text != "300 x 300" {
		t.Errorf("default text = %q", spec.Text)
	}
	if spec.Background != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("short hex = %v", spec.Background)
	}

	long := strings.Repeat("a", 200)
	spec, err = Parse("10x10", "000", "fff", long)
	if err != nil {
		t.Fatal(err)
	}
	if len(spec.Text) != maxTextRunes || !strings.HasSuffix(spec.Text, "...") {
		t.Errorf("long text not truncated: %d chars", len(spec.Text))
	}
}

func TestParseInvalid(t *testing.T) {
	cases := [][3]string{
		{"axb", "000", "fff"},
		{"0x10", "000", "fff"},
		{"5000x10", "000", "fff"},
		{"10x10", "zzzzzz", "fff"},
		{"10x10", "000", "12345"},
	}
	for _, c := range cases {
		if _, err := Parse(c[0], c[1], c[2], ""); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%v) err = %v, want ErrInvalidSpec", c, err)
		}
	}
}

func TestDrawPaintsBackgroundAndText(t *testing.T) {
	spec, err := Parse("200x100", "000000", "ffffff", "Hi")
	if err != nil {
		t.Fatal(err)
	}
	img := Draw(spec)
	if got := img.RGBAAt(0, 0); got != spec.Background {
		t.Errorf("corner pixel = %v, want background", got)
	}
	lit := false
	for y := 0; y < 100 && !lit; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y).R > 0x80 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("caption was not drawn")
	}
}

func TestEncodeJPEG(t *testing.T) {
	spec, err := Parse("120x60", "0a192f", "00ff88", "Blog Post")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, spec); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Errorf("decoded size = %v", b)
	}
}

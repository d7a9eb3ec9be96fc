package assets

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strings"
	"unicode/utf8"
)

// SolidGlyph is drawn for opaque pixels of image sprites.
const SolidGlyph = '█'

// Sprite is one animation frame. Its alpha mask is computed once when the
// sprite is built so collision tests only do lookups.
type Sprite struct {
	Name   string
	Width  int
	Height int

	opaque []bool
	glyphs []rune
}

// NewSprite builds a sprite of the given size whose opacity is decided by
// opaque. Glyphs default to SolidGlyph.
func NewSprite(name string, width, height int, opaque func(x, y int) bool) *Sprite {
	s := &Sprite{
		Name:   name,
		Width:  width,
		Height: height,
		opaque: make([]bool, width*height),
		glyphs: make([]rune, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			s.opaque[i] = opaque(x, y)
			if s.opaque[i] {
				s.glyphs[i] = SolidGlyph
			}
		}
	}
	return s
}

// ParseArt reads text art. Spaces are transparent, every other rune is an
// opaque glyph. Short lines are padded with transparency.
func ParseArt(name string, r io.Reader) (*Sprite, error) {
	var lines []string
	width := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lines = append(lines, line)
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read art %s: %w", name, err)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if width == 0 || len(lines) == 0 {
		return nil, fmt.Errorf("art %s is empty", name)
	}

	s := &Sprite{
		Name:   name,
		Width:  width,
		Height: len(lines),
		opaque: make([]bool, width*len(lines)),
		glyphs: make([]rune, width*len(lines)),
	}
	for y, line := range lines {
		x := 0
		for _, ch := range line {
			if ch != ' ' {
				s.opaque[y*width+x] = true
				s.glyphs[y*width+x] = ch
			}
			x++
		}
	}
	return s, nil
}

// FromImage builds a silhouette sprite from an image's alpha channel.
func FromImage(name string, img image.Image) *Sprite {
	b := img.Bounds()
	return NewSprite(name, b.Dx(), b.Dy(), func(x, y int) bool {
		_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a > 0
	})
}

// Opaque reports whether the source pixel at (x, y) has non-zero alpha.
func (s *Sprite) Opaque(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return false
	}
	return s.opaque[y*s.Width+x]
}

// Glyph returns the rune at source pixel (x, y), or 0 when transparent.
func (s *Sprite) Glyph(x, y int) rune {
	if !s.Opaque(x, y) {
		return 0
	}
	return s.glyphs[y*s.Width+x]
}

// OpaqueIn reports the alpha of local pixel (x, y) when the sprite is
// stretched over a w by h box, using nearest-neighbour sampling.
func (s *Sprite) OpaqueIn(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	return s.Opaque(x*s.Width/w, y*s.Height/h)
}

// GlyphIn is the glyph counterpart of OpaqueIn.
func (s *Sprite) GlyphIn(x, y, w, h int) rune {
	if w <= 0 || h <= 0 {
		return 0
	}
	return s.Glyph(x*s.Width/w, y*s.Height/h)
}

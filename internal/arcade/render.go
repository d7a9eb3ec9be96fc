package arcade

import (
	"math"

	tl "github.com/JoelOtter/termloop"
	"github.com/mattn/go-runewidth"
	"github.com/shvbsle/danarun/internal/assets"
	"github.com/shvbsle/danarun/internal/game"
)

// placeholderGlyph fills entities whose sprite failed to load.
const placeholderGlyph = '▒'

// canvas is the part of *tl.Screen the renderer draws through.
type canvas interface {
	RenderCell(x, y int, cell *tl.Cell)
	Size() (int, int)
}

// viewport maps the world onto a screen of cols x rows cells.
type viewport struct {
	cols, rows int
}

// cellRect returns the half-open cell range covered by a world box.
func (v viewport) cellRect(x, y, w, h float64) (x0, y0, x1, y1 int) {
	cols, rows := float64(v.cols), float64(v.rows)

	x0 = int(math.Floor(x * cols / game.PlayfieldWidth))
	y0 = int(math.Floor(y * rows / game.PlayfieldHeight))
	x1 = int(math.Ceil((x + w) * cols / game.PlayfieldWidth))
	y1 = int(math.Ceil((y + h) * rows / game.PlayfieldHeight))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

type renderer struct {
	screen  canvas
	sprites game.SpriteSource
	palette Palette
}

func (r *renderer) view() viewport {
	cols, rows := r.screen.Size()
	return viewport{cols: cols, rows: rows}
}

// entity draws e's current frame stretched over its cell box. Transparent
// pixels leave the cell underneath alone.
func (r *renderer) entity(e game.Entity) {
	v := r.view()
	x0, y0, x1, y1 := v.cellRect(e.X, e.Y, e.Width, e.Height)
	cw, ch := x1-x0, y1-y0

	var sprite *assets.Sprite
	if r.sprites != nil {
		sprite, _ = r.sprites.Sprite(e.FrameName())
	}
	fg := r.palette.Kind(e.Kind)

	for cy := max(y0, 0); cy < min(y1, v.rows); cy++ {
		for cx := max(x0, 0); cx < min(x1, v.cols); cx++ {
			glyph := placeholderGlyph
			if sprite != nil {
				glyph = sprite.GlyphIn(cx-x0, cy-y0, cw, ch)
			}
			if glyph == 0 {
				continue
			}
			r.screen.RenderCell(cx, cy, &tl.Cell{Fg: fg, Bg: r.palette.Background, Ch: glyph})
		}
	}
}

// ground draws the floor line along the bottom row.
func (r *renderer) ground() {
	cols, rows := r.screen.Size()
	for x := 0; x < cols; x++ {
		r.screen.RenderCell(x, rows-1, &tl.Cell{Fg: r.palette.Text, Bg: r.palette.Background, Ch: '▁'})
	}
}

// text draws s starting at column x. Wide runes take two cells.
func (r *renderer) text(x, y int, s string, fg tl.Attr) {
	col := x
	for _, ch := range s {
		r.screen.RenderCell(col, y, &tl.Cell{Fg: fg, Bg: r.palette.Background, Ch: ch})
		col += runewidth.RuneWidth(ch)
	}
}

// centered draws s horizontally centred on row y.
func (r *renderer) centered(y int, s string, fg tl.Attr) {
	cols, _ := r.screen.Size()
	r.text(max(cols/2-runewidth.StringWidth(s)/2, 0), y, s, fg)
}

// block draws lines centred as one block around row y.
func (r *renderer) block(y int, lines []string, fg tl.Attr) {
	cols, _ := r.screen.Size()
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	x := max((cols-width)/2, 0)
	for i, l := range lines {
		r.text(x, y+i, l, fg)
	}
}

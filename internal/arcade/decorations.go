package arcade

import tl "github.com/JoelOtter/termloop"

// Stars is the dark theme's night sky, drawn behind everything else.
type Stars struct {
	background tl.Attr
}

var starField = []struct {
	xFraction float64
	yFraction float64
	ch        rune
	color     tl.Attr
}{
	{0.06, 0.12, '*', tl.ColorWhite},
	{0.15, 0.18, '.', tl.ColorWhite},
	{0.22, 0.10, '✦', tl.ColorYellow},
	{0.31, 0.22, '.', tl.ColorWhite},
	{0.40, 0.14, '*', tl.ColorWhite},
	{0.47, 0.26, '·', tl.ColorWhite},
	{0.56, 0.11, '.', tl.ColorWhite},
	{0.65, 0.17, '*', tl.ColorYellow},
	{0.72, 0.09, '·', tl.ColorWhite},
	{0.81, 0.21, '.', tl.ColorWhite},
	{0.90, 0.13, '*', tl.ColorWhite},
	{0.10, 0.33, '.', tl.ColorWhite},
	{0.27, 0.30, '·', tl.ColorYellow},
	{0.50, 0.38, '*', tl.ColorWhite},
	{0.69, 0.34, '.', tl.ColorWhite},
	{0.87, 0.36, '·', tl.ColorWhite},
	{0.35, 0.46, '.', tl.ColorWhite},
	{0.77, 0.48, '*', tl.ColorYellow},
}

func (s *Stars) Draw(screen *tl.Screen) {
	s.draw(screen)
}

func (s *Stars) draw(screen canvas) {
	screenWidth, screenHeight := screen.Size()

	for _, star := range starField {
		x := int(float64(screenWidth) * star.xFraction)
		y := int(float64(screenHeight) * star.yFraction)

		if x >= 0 && x < screenWidth && y >= 0 && y < screenHeight {
			screen.RenderCell(x, y, &tl.Cell{
				Fg: star.color,
				Bg: s.background,
				Ch: star.ch,
			})
		}
	}
}

func (s *Stars) Tick(event tl.Event) {}

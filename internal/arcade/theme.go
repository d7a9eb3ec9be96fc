package arcade

import (
	tl "github.com/JoelOtter/termloop"
	"github.com/shvbsle/danarun/internal/game"
	"github.com/shvbsle/danarun/internal/storage"
)

// Palette holds the terminal colours for one theme.
type Palette struct {
	Background tl.Attr
	Text       tl.Attr
	Title      tl.Attr
	Accent     tl.Attr
	Danger     tl.Attr
	Stars      bool

	kinds map[game.Kind]tl.Attr
}

var darkPalette = Palette{
	Background: tl.ColorBlack,
	Text:       tl.ColorWhite,
	Title:      tl.ColorYellow,
	Accent:     tl.ColorCyan,
	Danger:     tl.ColorRed,
	Stars:      true,
	kinds: map[game.Kind]tl.Attr{
		game.KindPlayer:     tl.ColorYellow,
		game.KindGround:     tl.ColorRed,
		game.KindAir:        tl.ColorMagenta,
		game.KindBird:       tl.ColorCyan,
		game.KindCoin:       tl.ColorYellow | tl.AttrBold,
		game.KindDecoration: tl.ColorBlue,
	},
}

var lightPalette = Palette{
	Background: tl.ColorWhite,
	Text:       tl.ColorBlack,
	Title:      tl.ColorBlue,
	Accent:     tl.ColorMagenta,
	Danger:     tl.ColorRed,
	kinds: map[game.Kind]tl.Attr{
		game.KindPlayer:     tl.ColorBlue,
		game.KindGround:     tl.ColorRed,
		game.KindAir:        tl.ColorMagenta,
		game.KindBird:       tl.ColorGreen,
		game.KindCoin:       tl.ColorYellow,
		game.KindDecoration: tl.ColorCyan,
	},
}

// PaletteFor returns the palette for a stored theme name. Unknown names
// get the dark palette.
func PaletteFor(theme string) Palette {
	if theme == storage.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// Kind returns the colour an entity kind is drawn in.
func (p Palette) Kind(k game.Kind) tl.Attr {
	if c, ok := p.kinds[k]; ok {
		return c
	}
	return p.Text
}

var titleBanner = []string{
	"╔════════════════════════════════════════════════════════════════════════╗",
	"║                                                                        ║",
	"║    ██████╗  █████╗ ███╗   ██╗ █████╗    ██████╗ ██╗   ██╗███╗   ██╗    ║",
	"║    ██╔══██╗██╔══██╗████╗  ██║██╔══██╗   ██╔══██╗██║   ██║████╗  ██║    ║",
	"║    ██║  ██║███████║██╔██╗ ██║███████║   ██████╔╝██║   ██║██╔██╗ ██║    ║",
	"║    ██║  ██║██╔══██║██║╚██╗██║██╔══██║   ██╔══██╗██║   ██║██║╚██╗██║    ║",
	"║    ██████╔╝██║  ██║██║ ╚████║██║  ██║   ██║  ██║╚██████╔╝██║ ╚████║    ║",
	"║    ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝   ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝    ║",
	"║                                                                        ║",
	"╚════════════════════════════════════════════════════════════════════════╝",
}

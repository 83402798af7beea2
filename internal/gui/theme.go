package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/filedeck/filedeck/internal/constants"
)

// deckTheme tunes the default theme for a dense file table: configurable
// body text, tighter padding so more rows fit, and selection and hover
// tints that stay readable in both variants.
type deckTheme struct {
	textSize float32
}

func newDeckTheme(textSize int) *deckTheme {
	if textSize < constants.MinTextSize || textSize > constants.MaxTextSize {
		textSize = constants.DefaultTextSize
	}
	return &deckTheme{textSize: float32(textSize)}
}

var (
	accent      = color.NRGBA{R: 0x1E, G: 0x6F, B: 0xD9, A: 0xFF}
	selectLight = color.NRGBA{R: 0x1E, G: 0x6F, B: 0xD9, A: 0x33}
	selectDark  = color.NRGBA{R: 0x5A, G: 0x9B, B: 0xF0, A: 0x44}
	hoverLight  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x0F}
	hoverDark   = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x14}
)

func (t *deckTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent
	case theme.ColorNameSelection:
		if dark {
			return selectDark
		}
		return selectLight
	case theme.ColorNameHover:
		if dark {
			return hoverDark
		}
		return hoverLight
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *deckTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *deckTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *deckTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return t.textSize
	case theme.SizeNameHeadingText:
		return t.textSize + 5
	case theme.SizeNameCaptionText:
		return t.textSize - 2
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return theme.DefaultTheme().Size(name)
	}
}

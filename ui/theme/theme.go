package theme

// Centralized theming for the focus widget. Dark is the default mode; the
// light palette is kept for the "light" config value.

import (
	"github.com/soocke/focus-widget-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff"
	ColorPrimary   = "#2563eb"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"

	ColorFocused    = "green"
	ColorDistracted = "red"
	ColorPaused     = "orange"
	ColorManual     = "#3b82f6"
)

// Mode names accepted by config.Theme.
const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Primary   string
	Text      string
	TextMuted string
}

// PaletteFor returns colors for the given mode.
func PaletteFor(dark bool) PaletteSnapshot {
	if dark {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Primary:   "#3b82f6",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Primary:   ColorPrimary,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// CurrentPalette returns colors for the current mode.
func CurrentPalette() PaletteSnapshot { return PaletteFor(darkMode) }

// StatusColor is the foreground used for the status icon and text.
func StatusColor(s model.Status) string {
	switch s {
	case model.StatusFocused:
		return ColorFocused
	case model.StatusDistracted:
		return ColorDistracted
	case model.StatusPaused:
		return ColorPaused
	case model.StatusManual:
		return ColorManual
	default:
		return CurrentPalette().TextMuted
	}
}

// style names used with Style("timer.TLabel") etc.
const (
	StyleTimerLabel    = "timer.TLabel"
	StyleStatusLabel   = "status.TLabel"
	StylePrimaryButton = "primary.TButton"
)

// Fonts.
const (
	FontFamily      = "Helvetica"
	FontTimerFamily = "Consolas"
	FontTimerSize   = 30
	FontStatusSize  = 12
	FontIconSize    = 16
	FontButtonSize  = 10
)

var darkMode = true

// IsDarkMode maps a config theme name to the dark flag. Unknown names fall back to dark.
func IsDarkMode(name string) bool { return name != ModeLight }

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(darkMode) }

// SetDark switches mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	p := PaletteFor(dark)
	if dark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	App.Configure(Background(p.AppBg))

	StyleConfigure("TLabel", Background(p.AppBg), Foreground(p.Text), Font(FontFamily, FontStatusSize))
	StyleConfigure("TFrame", Background(p.AppBg))
	StyleConfigure(StyleStatusLabel, Background(p.AppBg), Foreground(p.TextMuted), Font(FontFamily, FontStatusSize))
	StyleConfigure(StyleTimerLabel,
		Background(p.AppBg),
		Foreground(p.Text),
		Font(FontTimerFamily, FontTimerSize, "bold"),
	)
	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Font(FontFamily, FontButtonSize),
		Padding("10p 5p"),
		Borderwidth(1),
		Relief("ridge"),
	)
}

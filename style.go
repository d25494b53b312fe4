package jsonmatch

import (
	"github.com/fatih/color"
)

// Style is a semantic presentation tag. Results emit styles; a Styler decides
// what they look like.
type Style int

const (
	StylePlain Style = iota
	StyleSuccess
	StyleFailure
	StyleNeutral
)

// Styler renders text in a given style.
type Styler interface {
	Apply(style Style, text string) string
}

// ANSIStyler renders styles as ANSI colors: green for success, red for
// failure and gray for neutral text.
type ANSIStyler struct {
	success *color.Color
	failure *color.Color
	neutral *color.Color
}

// NewANSIStyler returns an ANSIStyler. With force set, escape codes are
// always emitted; otherwise the terminal detection of the color package
// (NO_COLOR, non-tty stdout) decides.
func NewANSIStyler(force bool) *ANSIStyler {
	s := &ANSIStyler{
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		neutral: color.New(color.FgHiBlack),
	}
	if force {
		s.success.EnableColor()
		s.failure.EnableColor()
		s.neutral.EnableColor()
	}
	return s
}

// Apply implements Styler.
func (s *ANSIStyler) Apply(style Style, text string) string {
	switch style {
	case StyleSuccess:
		return s.success.Sprint(text)
	case StyleFailure:
		return s.failure.Sprint(text)
	case StyleNeutral:
		return s.neutral.Sprint(text)
	default:
		return text
	}
}

// PlainStyler ignores styles.
type PlainStyler struct{}

// Apply implements Styler.
func (PlainStyler) Apply(_ Style, text string) string {
	return text
}

// DefaultStyler is used when a VisualizationContext carries no Styler.
var DefaultStyler Styler = NewANSIStyler(true)

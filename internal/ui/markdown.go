package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 100

// DetectGlamourStyle picks the glamour style for stdout: $GLAMOUR_STYLE
// when set, "notty" when stdout cannot show colors, otherwise dark or light
// from the terminal background. Background detection queries the terminal
// and gives up after timeout.
func DetectGlamourStyle(timeout time.Duration) string {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" && style != "auto" {
		return style
	}

	out := termenv.NewOutput(os.Stdout)
	if out.Profile == termenv.Ascii {
		return "notty"
	}

	ch := make(chan string, 1)
	go func() {
		if out.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case style := <-ch:
		return style
	case <-time.After(timeout):
		return "dark"
	}
}

// RenderMarkdown renders md for the terminal with the named glamour style,
// wrapped at width.
func RenderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

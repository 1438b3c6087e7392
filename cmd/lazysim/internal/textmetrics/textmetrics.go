// Package textmetrics measures wrapped text so simulated sections get a
// content height from their text payload.
package textmetrics

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/lazyview/pkg/graphics"
)

// Layout is text broken into lines that fit a width.
type Layout struct {
	Lines      []string
	LineHeight float64
	Size       graphics.Size
}

// Measurer wraps text with a fixed font face.
type Measurer struct {
	face font.Face
}

// New returns a measurer using face. A nil face uses the bundled 7x13 bitmap
// font.
func New(face font.Face) *Measurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Measurer{face: face}
}

// LineHeight returns the face's line height in pixels.
func (m *Measurer) LineHeight() float64 {
	return float64(m.face.Metrics().Height.Ceil())
}

// Width returns the advance width of s in pixels.
func (m *Measurer) Width(s string) float64 {
	return float64(font.MeasureString(m.face, s).Ceil())
}

// Layout greedily wraps text at spaces so no line exceeds maxWidth, unless a
// single word is wider. Explicit newlines start new paragraphs.
func (m *Measurer) Layout(text string, maxWidth float64) Layout {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, m.wrap(paragraph, maxWidth)...)
	}
	if strings.TrimSpace(text) == "" {
		lines = nil
	}

	lineHeight := m.LineHeight()
	var width float64
	for _, line := range lines {
		width = max(width, m.Width(line))
	}
	return Layout{
		Lines:      lines,
		LineHeight: lineHeight,
		Size:       graphics.Size{Width: width, Height: lineHeight * float64(len(lines))},
	}
}

func (m *Measurer) wrap(paragraph string, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

package render

import (
	"fmt"
	"image/color"
	"runtime"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"ml-universe/internal/animation"
	"ml-universe/internal/content"
	"ml-universe/internal/logger"
	"ml-universe/internal/universe"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30

	logFontSize   = 14
	logLines      = 12
	labelFontSize = 20
	hintFontSize  = 16
	titleFontSize = 28
	bodyFontSize  = 16
	panelPadding  = 24
	panelMaxWidth = 520
	loadingWidth  = 240

	minHeadingSize = 6
)

var (
	panelBackground = rl.NewColor(10, 10, 30, 220)
	panelBorder     = rl.NewColor(74, 158, 255, 160)
	dimText         = rl.NewColor(180, 180, 200, 255)
)

// Overlay draws the 2D layer: loading screen, hover label, content panel, hint and the
// debug counters. All debug overlays are off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowLog      bool
	log          *logger.Logger
	font         rl.Font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// NewOverlay returns an overlay that reads recent lines from log when ShowLog is set.
func NewOverlay(log *logger.Logger) *Overlay {
	return &Overlay{log: log}
}

// SetFont sets the font for all overlay text. Zero texture ID = use raylib default.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
}

// Unload releases the font, if one was set.
func (o *Overlay) Unload() {
	if o.font.Texture.ID != 0 {
		rl.UnloadFont(o.font)
		o.font = rl.Font{}
	}
}

func (o *Overlay) text(s string, x, y, size int32, col color.RGBA) {
	if o.font.Texture.ID == 0 {
		rl.DrawText(s, x, y, size, col)
		return
	}
	rl.DrawTextEx(o.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
}

func (o *Overlay) measure(s string, size int32) int32 {
	if o.font.Texture.ID == 0 {
		return rl.MeasureText(s, size)
	}
	return int32(rl.MeasureTextEx(o.font, s, float32(size), 1).X)
}

// Loading draws the progress screen shown until the scene is loaded.
func (o *Overlay) Loading(percent float64) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	title := "Loading universe"
	o.text(title, (w-o.measure(title, titleFontSize))/2, h/2-50, titleFontSize, rl.RayWhite)
	x, y := (w-loadingWidth)/2, h/2
	rl.DrawRectangleLinesEx(rl.NewRectangle(float32(x), float32(y), loadingWidth, 10), 1, panelBorder)
	rl.DrawRectangle(x+2, y+2, int32(float64(loadingWidth-4)*percent/100), 6, panelBorder)
	pct := fmt.Sprintf("%.0f%%", percent)
	o.text(pct, (w-o.measure(pct, hintFontSize))/2, y+20, hintFontSize, dimText)
}

// Labels draws the name of every hovered marker next to it.
func (o *Overlay) Labels(s *Scene, f animation.Frame) {
	for _, mf := range f.Markers {
		if !mf.LabelVisible {
			continue
		}
		p := rl.GetWorldToScreen(vec(mf.Position), s.Camera)
		x := int32(p.X) - o.measure(mf.Label, labelFontSize)/2
		y := int32(p.Y) - 48
		o.text(mf.Label, x, y, labelFontSize, s.color(mf.Color))
	}
}

// Heading draws the title lines at their projected positions. Glyph height in pixels comes
// from projecting the line's world height, so the text shrinks and grows with the scene.
func (o *Overlay) Heading(s *Scene, lines []universe.HeadingLine) {
	for _, line := range lines {
		center := vec(line.Position)
		top := center
		top.Y += line.Size / 2
		p := rl.GetWorldToScreen(center, s.Camera)
		size := int32(2 * (p.Y - rl.GetWorldToScreen(top, s.Camera).Y))
		if size < minHeadingSize {
			continue
		}
		col := rl.RayWhite
		if line.Color != "" {
			col = s.color(line.Color)
		}
		o.text(line.Text, int32(p.X)-o.measure(line.Text, size)/2, int32(p.Y)-size/2, size, col)
	}
}

// Hint draws the usage line at the bottom of the screen.
func (o *Overlay) Hint(panelOpen, playing bool) {
	text := "Click a marker to explore. M toggles sound."
	if panelOpen {
		text = "Esc closes the panel."
	}
	if playing {
		text += "  [sound on]"
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	o.text(text, (w-o.measure(text, hintFontSize))/2, h-hintFontSize-fpsPadding, hintFontSize, dimText)
}

// Panel draws the content panel for the open section on the right side of the screen,
// or across the whole width on narrow screens.
func (o *Overlay) Panel(p content.Panel, narrow bool) {
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	w := int32(panelMaxWidth)
	if narrow || w > sw-2*fpsPadding {
		w = sw - 2*fpsPadding
	}
	rect := rl.NewRectangle(float32(sw-w-fpsPadding), fpsPadding, float32(w), float32(sh-2*fpsPadding-hintFontSize-fpsPadding))
	rl.DrawRectangleRounded(rect, 0.04, 8, panelBackground)
	rl.DrawRectangleLinesEx(rect, 1, panelBorder)

	x := int32(rect.X) + panelPadding
	y := int32(rect.Y) + panelPadding
	maxChars := int((w - 2*panelPadding) / (bodyFontSize / 2))
	o.text(p.Title, x, y, titleFontSize, rl.RayWhite)
	y += titleFontSize + 12
	for _, line := range wrap(p.Intro, maxChars) {
		o.text(line, x, y, bodyFontSize, dimText)
		y += bodyFontSize + 4
	}

	cats, groups := p.Categories()
	for _, cat := range cats {
		if cat != "" && len(cats) > 1 {
			y += 8
			o.text(strings.ToUpper(cat), x, y, bodyFontSize, panelBorder)
			y += bodyFontSize + 6
		}
		for _, r := range groups[cat] {
			if y > int32(rect.Y+rect.Height)-bodyFontSize {
				return
			}
			y = o.record(r, x, y, w-2*panelPadding, maxChars)
		}
	}
}

func (o *Overlay) record(r content.Record, x, y, width int32, maxChars int) int32 {
	title := rl.RayWhite
	if r.Color != "" {
		title = parseHex(r.Color)
	}
	o.text(r.Title, x, y, bodyFontSize+2, title)
	if r.Level > 0 {
		bar := width / 2
		bx := x + width - bar
		rl.DrawRectangle(bx, y+6, bar, 6, rl.NewColor(40, 40, 60, 255))
		rl.DrawRectangle(bx, y+6, bar*int32(r.Level)/100, 6, title)
	}
	y += bodyFontSize + 8
	for _, line := range wrap(r.Description, maxChars) {
		o.text(line, x, y, bodyFontSize, dimText)
		y += bodyFontSize + 4
	}
	if len(r.Technologies) > 0 {
		for _, line := range wrap(strings.Join(r.Technologies, " / "), maxChars) {
			o.text(line, x, y, bodyFontSize-2, panelBorder)
			y += bodyFontSize + 2
		}
	}
	if r.Link != "" {
		o.text(r.Link, x, y, bodyFontSize-2, dimText)
		y += bodyFontSize + 2
	}
	return y + 10
}

// wrap breaks s into lines of at most n runes on word boundaries.
func wrap(s string, n int) []string {
	if s == "" || n <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > n {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Debug renders any enabled debug overlays in the top-right corner, plus recent log lines
// bottom-left. Text is only recomputed every updateInterval frames to limit allocations.
func (o *Overlay) Debug() {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.ShowFPS && o.lastFpsText == "" {
		update = true
	}
	if o.ShowMemAlloc && o.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)
	if o.ShowFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := o.measure(o.lastFpsText, fpsFontSize)
		o.text(o.lastFpsText, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
		y += fpsLineHeight
	}
	if o.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			mb := float64(o.lastMemStats.Alloc) / (1024 * 1024)
			o.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		w := o.measure(o.lastMemText, fpsFontSize)
		o.text(o.lastMemText, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
	}

	if o.ShowLog && o.log != nil {
		lines := o.log.Lines()
		if len(lines) > logLines {
			lines = lines[len(lines)-logLines:]
		}
		ly := int32(rl.GetScreenHeight()) - int32(len(lines)+2)*(logFontSize+2)
		for _, line := range lines {
			o.text(line, fpsPadding, ly, logFontSize, dimText)
			ly += logFontSize + 2
		}
	}
}

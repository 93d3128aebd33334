package render

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var errNoFont = errors.New("render: font not found")

// fontDirs are tried in order so fonts are found whether run from the repo root or cmd/universe.
var fontDirs = []string{"assets/fonts", "../../assets/fonts"}

var fontExts = []string{".ttf", ".otf"}

// findFont resolves name to a font file. name may be a path, or a family such as "Inter"
// matched against files under fontDirs; a "Regular" face wins when several match.
func findFont(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errNoFont
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	norm := normalizeFontName(strings.TrimSuffix(name, filepath.Ext(name)))
	var matches []string
	for _, dir := range fontDirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !isFontFile(path) {
				return nil
			}
			if strings.Contains(normalizeFontName(path), norm) {
				matches = append(matches, path)
			}
			return nil
		})
	}
	if len(matches) == 0 {
		return "", errNoFont
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

func isFontFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range fontExts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeFontName lowercases and drops spaces, dashes and underscores for fuzzy matching.
func normalizeFontName(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// loadFont loads the named font at a size suited to the overlay. A zero font means the
// raylib default is used.
func loadFont(name string) (rl.Font, error) {
	path, err := findFont(name)
	if err != nil {
		return rl.Font{}, err
	}
	font := rl.LoadFontEx(path, titleFontSize*2, nil)
	if !rl.IsFontValid(font) {
		return rl.Font{}, errNoFont
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font, nil
}

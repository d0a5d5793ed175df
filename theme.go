package wlcreator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// HicolorDir returns the user's writable hicolor theme base, where the
// per-size icon directories are created.
func HicolorDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(dataHome, "icons", "hicolor")
}

// NormalizeIconName turns an arbitrary launcher name into something safe
// for an icon file name: decompose, drop combining marks, lowercase
// ASCII alphanumerics, keep underscore and period, hyphen for the rest.
func NormalizeIconName(name string) string {
	decomposed, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		decomposed = name
	}

	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		switch {
		case r < 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			out = append(out, unicode.ToLower(r))
		case r == '_' || r == '.':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

// ThemeIconName is the icon name launchers refer to and theme files are
// stored under.
func ThemeIconName(name string) string {
	return "wlcreator-" + NormalizeIconName(name)
}

// BuildThemeTree installs one png per distinct image size of catalog
// into themeBase/<W>x<H>/apps/<icon name>.png. Among variants sharing a
// size the greatest bit depth wins. Extraction goes through scratch;
// moves that fail (cross-device, permissions) are surfaced unmodified.
// The caller is responsible for refreshing the system icon cache
// afterwards.
func BuildThemeTree(ex Extractor, catalog IconCatalog, sourcePath, themeBase, name, scratch string) ([]ThemeEntry, error) {
	sorted := make(IconCatalog, len(catalog))
	copy(sorted, catalog)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Width != b.Width {
			return a.Width < b.Width
		}
		if a.Height != b.Height {
			return a.Height < b.Height
		}
		return a.BitDepth > b.BitDepth
	})

	iconName := ThemeIconName(name)

	var entries []ThemeEntry
	for i, v := range sorted {
		if i > 0 && v.Width == sorted[i-1].Width && v.Height == sorted[i-1].Height {
			// Highest depth for this size was already installed.
			continue
		}

		extracted, err := ex.Extract(sourcePath, v, scratch)
		if err != nil {
			return entries, err
		}

		sizeDir := filepath.Join(themeBase, fmt.Sprintf("%dx%d", v.Width, v.Height), "apps")
		if err := os.MkdirAll(sizeDir, 0o755); err != nil {
			return entries, err
		}

		dest := filepath.Join(sizeDir, iconName+".png")
		if err := os.Rename(extracted, dest); err != nil {
			return entries, err
		}

		entries = append(entries, ThemeEntry{Width: v.Width, Height: v.Height, Path: dest})
	}

	return entries, nil
}

// RefreshIconCache asks the desktop environment to pick up newly placed
// theme files. Callers may treat a failure as non-fatal.
func RefreshIconCache() error {
	_, err := run("xdg-icon-resource", []string{"forceupdate"}, "")
	return err
}

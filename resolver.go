package wlcreator

import (
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Extractor lists the images embedded in an icon file and materializes
// single variants. Tools is the real implementation; tests substitute
// stubs.
type Extractor interface {
	ListVariants(path string) (IconCatalog, error)
	Extract(path string, v IconVariant, destDir string) (string, error)
}

// Tools invokes the external icoutils programs. The zero value finds
// icotool and wrestool on PATH. Every invocation blocks until the tool
// exits and its combined output is read; there is no cancellation.
type Tools struct {
	Icotool  string
	Wrestool string
}

func (t Tools) icotool() string {
	if t.Icotool != "" {
		return t.Icotool
	}
	return "icotool"
}

func (t Tools) wrestool() string {
	if t.Wrestool != "" {
		return t.Wrestool
	}
	return "wrestool"
}

// Check verifies that the icoutils programs can be invoked at all.
func (t Tools) Check() error {
	for _, tool := range []string{t.wrestool(), t.icotool()} {
		if _, err := run(tool, []string{"--version"}, ""); err != nil {
			return err
		}
	}
	return nil
}

func run(tool string, args []string, dir string) (string, error) {
	slog.Debug("running external tool", "tool", tool, "args", args, "dir", dir)
	cmd := exec.Command(tool, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", &ToolError{Tool: tool, Args: args, Output: string(out), Err: err}
	}
	return string(out), nil
}

// Each icotool listing line is a run of "--key=value" or bare "--key"
// attributes.
var listingAttr = regexp.MustCompile(`--([^ =]*)(?:=([^ ]*))?`)

// ListVariants runs the lister over an icon file and parses one variant
// per output line. A file that cannot be listed is an error, never an
// empty catalog.
func (t Tools) ListVariants(path string) (IconCatalog, error) {
	out, err := run(t.icotool(), []string{"-l", path}, "")
	if err != nil {
		return nil, err
	}

	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil, &ToolError{
			Tool:   t.icotool(),
			Args:   []string{"-l", path},
			Output: out,
			Err:    fmt.Errorf("no images listed"),
		}
	}

	var catalog IconCatalog
	for _, line := range strings.Split(out, "\n") {
		attrs := make(map[string]string)
		for _, m := range listingAttr.FindAllStringSubmatch(line, -1) {
			attrs[m[1]] = m[2]
		}

		var v IconVariant
		for key, field := range map[string]*int{
			"index":     &v.Index,
			"width":     &v.Width,
			"height":    &v.Height,
			"bit-depth": &v.BitDepth,
		} {
			n, err := strconv.Atoi(attrs[key])
			if err != nil {
				return nil, &ToolError{
					Tool:   t.icotool(),
					Args:   []string{"-l", path},
					Output: out,
					Err:    fmt.Errorf("listing line %q: bad %s", line, key),
				}
			}
			*field = n
		}
		catalog = append(catalog, v)
	}

	return catalog, nil
}

// Extract materializes exactly the image at v.Index from path into
// destDir and returns the written file's path. The name is derived from
// the source name and the variant geometry, so extracting the same
// variant twice yields the same path.
func (t Tools) Extract(path string, v IconVariant, destDir string) (string, error) {
	args := []string{"-x", "--icon", "--index", strconv.Itoa(v.Index), path}
	if _, err := run(t.icotool(), args, destDir); err != nil {
		return "", err
	}
	return ExtractedPath(path, v, destDir), nil
}

// ExtractedPath is the deterministic output name Extract produces for a
// variant, mirroring icotool's own naming.
func ExtractedPath(path string, v IconVariant, destDir string) string {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), ".ico") {
		base = base[:len(base)-len(".ico")]
	}
	name := fmt.Sprintf("%s_%d_%dx%dx%d.png", base, v.Index, v.Width, v.Height, v.BitDepth)
	return filepath.Join(destDir, name)
}

// ExtractResources pulls the icon-group resources out of an executable,
// dll or icon library into destDir as individual .ico files.
func (t Tools) ExtractResources(path, destDir string) error {
	_, err := run(t.wrestool(), []string{"-x", "-t", "14", "-o", destDir, path}, "")
	return err
}

// KindOfSource decides how an icon source has to be handled, from its
// extension. Windows file systems compare names case-insensitively.
// TODO: use binary headers, not extensions.
func KindOfSource(path string) SourceKind {
	ext := strings.ToUpper(filepath.Ext(path))
	switch ext {
	case ".EXE", ".DLL", ".ICL":
		return MultiResourceContainer
	case ".ICO":
		return SingleIcon
	}
	return DirectImage
}

// SelectBest returns the catalog variant whose size is closest to the
// target display size. Closeness is judged on the geometric mean of
// width and height; (w+h)/2 would also work, there is no wrong answer,
// XDG just says "size". Equal scores are broken by the greater bit
// depth.
func SelectBest(catalog IconCatalog, criterion int) (IconVariant, error) {
	if criterion <= 0 {
		return IconVariant{}, fmt.Errorf("criterion %d: %w", criterion, ErrInvalidCriterion)
	}
	if len(catalog) == 0 {
		return IconVariant{}, ErrEmptyCatalog
	}

	best := catalog[0]
	bestScore := selectionScore(best, criterion)
	for _, v := range catalog[1:] {
		score := selectionScore(v, criterion)
		if score < bestScore || (score == bestScore && v.BitDepth > best.BitDepth) {
			best = v
			bestScore = score
		}
	}
	return best, nil
}

func selectionScore(v IconVariant, criterion int) float64 {
	return math.Abs(math.Sqrt(float64(v.Width*v.Height)) - float64(criterion))
}

package wlcreator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Session owns the scratch directory extractions work in. Everything is
// synchronous and single-threaded; the one rule is call ordering: Clear
// only between logically independent operations, never while candidates
// from a previous Resolve are still in use, since their previews live in
// the scratch directory.
type Session struct {
	Tools Tools

	// Scratch work area, created by NewSession and removed by Close.
	Dir string
}

// NewSession creates the scratch directory for one editing session.
func NewSession(tools Tools) (*Session, error) {
	dir, err := os.MkdirTemp("", "wlcreator-")
	if err != nil {
		return nil, err
	}
	slog.Debug("created scratch directory", "dir", dir)
	return &Session{Tools: tools, Dir: dir}, nil
}

// Clear removes every file in the scratch directory.
func (s *Session) Clear() error {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.Dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close clears and removes the scratch directory. The session is
// unusable afterwards.
func (s *Session) Close() error {
	if err := s.Clear(); err != nil {
		return err
	}
	return os.Remove(s.Dir)
}

// Resolve turns an icon source into the list of selectable candidates.
// Containers are split into their embedded .ico resources first, each
// contributing one candidate; a standalone .ico contributes one; any
// other image is passed through untouched. Clears the scratch directory
// before starting.
func (s *Session) Resolve(iconPath string) ([]CandidateIcon, error) {
	if err := s.Clear(); err != nil {
		return nil, err
	}

	switch KindOfSource(iconPath) {
	case MultiResourceContainer:
		return s.resolveContainer(iconPath)
	case SingleIcon:
		preview, err := s.extractBest(iconPath)
		if err != nil {
			return nil, err
		}
		return []CandidateIcon{{
			Title:   filepath.Base(iconPath),
			Preview: preview,
			IcoPath: iconPath,
		}}, nil
	default:
		return []CandidateIcon{{
			Title:   filepath.Base(iconPath),
			Preview: iconPath,
		}}, nil
	}
}

func (s *Session) resolveContainer(iconPath string) ([]CandidateIcon, error) {
	if err := s.Tools.ExtractResources(iconPath, s.Dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no icon resources in %s; try running wrestool manually", iconPath)
	}

	// wrestool names its outputs <container>_<type>_<resource>.ico;
	// strip the container part to get a usable title.
	prefixSize := len(filepath.Base(iconPath)) + 4

	var candidates []CandidateIcon
	for _, e := range entries {
		if !strings.EqualFold(filepath.Ext(e.Name()), ".ico") {
			continue
		}

		title := e.Name()[min(prefixSize, len(e.Name())):]
		title = strings.TrimSuffix(title, filepath.Ext(title))

		icoPath := filepath.Join(s.Dir, title+".ico")
		if err := os.Rename(filepath.Join(s.Dir, e.Name()), icoPath); err != nil {
			return nil, err
		}

		extracted, err := s.extractBest(icoPath)
		if err != nil {
			return nil, err
		}
		preview := filepath.Join(s.Dir, title+".png")
		if err := os.Rename(extracted, preview); err != nil {
			return nil, err
		}

		candidates = append(candidates, CandidateIcon{
			Title:   title,
			Preview: preview,
			IcoPath: icoPath,
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no .ico resources in %s; try icotool manually, or GIMP", iconPath)
	}
	return candidates, nil
}

// extractBest lists an .ico and extracts the variant best suited to the
// desktop's launcher icon size.
func (s *Session) extractBest(icoPath string) (string, error) {
	catalog, err := s.Tools.ListVariants(icoPath)
	if err != nil {
		return "", err
	}
	best, err := SelectBest(catalog, IconSize)
	if err != nil {
		return "", err
	}
	return s.Tools.Extract(icoPath, best, s.Dir)
}

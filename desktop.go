package wlcreator

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DesktopEntry is the content of one launcher descriptor.
//
// Written by hand rather than through an ini writer: the Desktop Entry
// format requires bare key=value lines in a fixed key order and no value
// quoting (Exec lines legitimately contain spaces, quotes and $).
type DesktopEntry struct {
	Name       string
	Icon       string
	Exec       string
	Path       string
	Categories []string

	// Mark the descriptor itself executable, with an xdg-open shebang so
	// running it opens the launcher.
	Executable bool
}

func (e DesktopEntry) render() string {
	var b strings.Builder
	if e.Executable {
		b.WriteString("#!/usr/bin/env xdg-open\n\n")
	}
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Version=1.0\n")
	b.WriteString("Name=" + e.Name + "\n")
	b.WriteString("Icon=" + e.Icon + "\n")
	b.WriteString("Exec=" + e.Exec + "\n")
	b.WriteString("Path=" + e.Path + "\n")
	if len(e.Categories) > 0 {
		b.WriteString("Categories=" + strings.Join(e.Categories, ";") + "\n")
	}
	return b.String()
}

// WriteDesktopEntry writes the descriptor to path, mode 0777 or 0666
// masked by the process umask depending on Executable.
func WriteDesktopEntry(path string, e DesktopEntry) error {
	if err := os.WriteFile(path, []byte(e.render()), 0o666); err != nil {
		return err
	}

	umask := syscall.Umask(0)
	syscall.Umask(umask)

	mode := os.FileMode(0o666)
	if e.Executable {
		mode = 0o777
	}
	return os.Chmod(path, mode&^os.FileMode(umask))
}

// LauncherConfig is the form data launcher creation consumes.
type LauncherConfig struct {
	// Launch command inputs.
	Spec LaunchSpec

	// Launcher display name; also seeds the theme icon name.
	Name string

	// Selected icon source: a .ico (possibly pulled out of a container
	// by Resolve) or a direct image used by path.
	IconSource string

	// Directory the visible .desktop file goes to, typically the
	// desktop.
	LauncherDir string

	Categories []string
	Executable bool
}

// CreateLauncher builds the theme tree for an .ico source, writes the
// launcher descriptor, and mirrors it under the local applications
// directory. Returns the visible descriptor's path.
func CreateLauncher(s *Session, cfg LauncherConfig) (string, error) {
	icon := cfg.IconSource
	if KindOfSource(cfg.IconSource) == SingleIcon {
		catalog, err := s.Tools.ListVariants(cfg.IconSource)
		if err != nil {
			return "", err
		}
		if _, err := BuildThemeTree(s.Tools, catalog, cfg.IconSource, HicolorDir(), cfg.Name, s.Dir); err != nil {
			return "", err
		}
		if err := RefreshIconCache(); err != nil {
			slog.Warn("icon cache refresh failed", "err", err)
		}
		icon = ThemeIconName(cfg.Name)
	}

	entry := DesktopEntry{
		Name:       cfg.Name,
		Icon:       icon,
		Exec:       ComposeLaunchCommand(cfg.Spec),
		Path:       filepath.Dir(cfg.Spec.Exe),
		Categories: cfg.Categories,
		Executable: cfg.Executable,
	}

	launcherPath := filepath.Join(cfg.LauncherDir, cfg.Name+".desktop")
	if err := WriteDesktopEntry(launcherPath, entry); err != nil {
		return "", err
	}

	localDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "applications", "wlcreator")
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return "", err
	}
	localPath := filepath.Join(localDir, cfg.Name+".desktop")
	if localPath != launcherPath {
		if err := WriteDesktopEntry(localPath, entry); err != nil {
			return "", err
		}
	}

	return launcherPath, nil
}

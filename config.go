package wlcreator

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const settingsSection = "WLCreator"

// Settings are the persisted user preferences.
type Settings struct {
	// Directory launchers are created in.
	LauncherDir string

	// Command used to run Windows applications.
	Wine string

	// Currently selected wine prefix (bottle).
	WinePrefix string

	// Directory new prefixes are created under.
	BottlesDir string

	// Make created .desktop files executable.
	ExecutableIcon bool
}

// SettingsPath is the default location of the settings file.
func SettingsPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "wlcreator", "settings.ini")
}

// DesktopDir asks xdg-user-dir for the user's desktop directory,
// falling back to $HOME when the tool is unavailable.
func DesktopDir() string {
	out, err := run("xdg-user-dir", []string{"DESKTOP"}, "")
	if err != nil {
		return os.Getenv("HOME")
	}
	return strings.TrimRight(out, "\n")
}

// DefaultSettings returns the settings used before any are saved.
func DefaultSettings() Settings {
	return Settings{
		LauncherDir:    DesktopDir(),
		Wine:           "wine",
		WinePrefix:     DefaultWinePrefix(),
		BottlesDir:     os.Getenv("HOME"),
		ExecutableIcon: true,
	}
}

// LoadSettings reads settings from path. A missing file or missing
// section yields the defaults.
func LoadSettings(path string) Settings {
	defaults := DefaultSettings()

	file, err := ini.Load(path)
	if err != nil {
		return defaults
	}
	section, err := file.GetSection(settingsSection)
	if err != nil {
		return defaults
	}
	return Settings{
		LauncherDir:    section.Key("Launcher").MustString(defaults.LauncherDir),
		Wine:           section.Key("Wine").MustString(defaults.Wine),
		WinePrefix:     section.Key("WinePrefix").MustString(defaults.WinePrefix),
		BottlesDir:     section.Key("Bottles").MustString(defaults.BottlesDir),
		ExecutableIcon: section.Key("ExecutableIcon").MustString("1") != "0",
	}
}

// SaveSettings writes settings to path, creating the directory when
// needed.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file := ini.Empty()
	section, err := file.NewSection(settingsSection)
	if err != nil {
		return err
	}
	section.Key("Launcher").SetValue(s.LauncherDir)
	section.Key("Wine").SetValue(s.Wine)
	section.Key("WinePrefix").SetValue(s.WinePrefix)
	section.Key("Bottles").SetValue(s.BottlesDir)
	executable := "0"
	if s.ExecutableIcon {
		executable = "1"
	}
	section.Key("ExecutableIcon").SetValue(executable)

	return file.SaveTo(path)
}

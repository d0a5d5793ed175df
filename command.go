package wlcreator

import (
	"os"
	"path/filepath"
	"strings"
)

// Characters that cannot appear inside a single-quoted token.
const singleQuoteIllegal = "'\t\n"

// Characters the shell gives meaning to; any of these forces quoting.
const reserved = "\"\\ ><~|&;$*?#()`="

// Quote returns text as a token safe to place in a shell-interpreted
// command line. Text free of reserved characters is returned unchanged.
// With allowSingleQuote the token is wrapped in single quotes when the
// text permits it; otherwise it is double-quoted with `"`, backtick,
// `$` and `\` backslash-escaped, and tab/newline rendered as \t and \n.
func Quote(text string, allowSingleQuote bool) string {
	hasSQIllegal := false
	hasReserved := false
	for _, c := range text {
		if strings.ContainsRune(singleQuoteIllegal, c) {
			hasSQIllegal = true
		} else if strings.ContainsRune(reserved, c) {
			hasReserved = true
		}
	}

	if allowSingleQuote && !hasSQIllegal && hasReserved {
		return "'" + text + "'"
	}

	if hasSQIllegal || hasReserved {
		var b strings.Builder
		b.WriteByte('"')
		for _, c := range text {
			switch c {
			case '"', '`', '$', '\\':
				b.WriteByte('\\')
				b.WriteRune(c)
			case '\t':
				b.WriteString(`\t`)
			case '\n':
				b.WriteString(`\n`)
			default:
				b.WriteRune(c)
			}
		}
		b.WriteByte('"')
		return b.String()
	}

	return text
}

// DefaultWinePrefix is the prefix wine uses when WINEPREFIX is not set.
func DefaultWinePrefix() string {
	return filepath.Join(os.Getenv("HOME"), ".wine")
}

// LaunchSpec carries everything the composed command line depends on.
type LaunchSpec struct {
	// Absolute path of the Windows executable.
	Exe string

	// Command used to run Windows applications, e.g. "wine".
	Wine string

	// Wine prefix (bottle) the application runs in. Emitted as an env
	// override only when it differs from the default prefix.
	WinePrefix string

	// Free-form extra arguments, appended verbatim.
	ExtraArgs string

	// Append "xrandr -s 0" so the native resolution is restored after
	// the application exits.
	RestoreResolution bool

	// Toggle Compiz legacy fullscreen support around the application
	// (fix for Ubuntu 12.04 LTS).
	LegacyFullscreen bool
}

const legacyFullscreenFragment = "gconftool -s /apps/compiz-1/plugins/workarounds/screen0/options/legacy_fullscreen -s false -t bool"

// ComposeLaunchCommand builds the command line a launcher executes. When
// either toggle contributes a shell fragment the whole command is handed
// to "sh -c" as a single quoted argument so the ;-joined fragments run
// in sequence; otherwise the command stands alone.
func ComposeLaunchCommand(spec LaunchSpec) string {
	exeDir := filepath.Dir(spec.Exe)
	prefix, suffix := "", ""

	if spec.RestoreResolution {
		suffix += " ; xrandr -s 0"
	}

	if spec.LegacyFullscreen {
		prefix = legacyFullscreenFragment + " ; " + prefix
		suffix += " ; " + legacyFullscreenFragment
	}

	needsSh := prefix != "" || suffix != ""

	// A path under the working directory is launched relative to it;
	// shorter, and sidesteps absolute-path quoting edge cases.
	exe := spec.Exe
	if len(exe) > len(exeDir) && exe[:len(exeDir)] == exeDir && exe[len(exeDir)] == os.PathSeparator {
		exe = exe[len(exeDir)+1:]
	}

	exe = spec.Wine + " " + Quote(exe, needsSh)
	if DefaultWinePrefix() != spec.WinePrefix {
		exe = "env " + Quote("WINEPREFIX="+spec.WinePrefix, needsSh) + " " + exe
	}
	if spec.ExtraArgs != "" {
		exe += " " + spec.ExtraArgs
	}

	if needsSh {
		return "sh -c " + Quote(prefix+exe+suffix, false)
	}
	return exe
}

// DebugCommand is the launch command prefixed with a cd into the
// executable's directory, for running by hand and watching the output.
func DebugCommand(spec LaunchSpec) string {
	return "cd " + Quote(filepath.Dir(spec.Exe), true) + "; " + ComposeLaunchCommand(spec)
}

package wlcreator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		allowSingleQuote bool
		want             string
	}{
		{"plain text unchanged", "notepad.exe", true, "notepad.exe"},
		{"plain text unchanged without single quotes", "notepad.exe", false, "notepad.exe"},
		{"space double-quoted", "hello world", false, `"hello world"`},
		{"space single-quoted when allowed", "hello world", true, "'hello world'"},
		{"single quote forces double quoting", "it's", true, `"it's"`},
		{"single quote without reserved chars", "it's", false, `"it's"`},
		{"dollar escaped", "costs $5", false, `"costs \$5"`},
		{"backslash escaped", `a\b`, false, `"a\\b"`},
		{"double quote escaped", `say "hi"`, false, `"say \"hi\""`},
		{"backtick escaped", "run `cmd`", false, "\"run \\`cmd\\`\""},
		{"tab becomes backslash-t", "a\tb", true, `"a\tb"`},
		{"newline becomes backslash-n", "a\nb", true, `"a\nb"`},
		{"equals is reserved", "WINEPREFIX=/tmp/x", false, `"WINEPREFIX=/tmp/x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.text, tt.allowSingleQuote))
		})
	}
}

// Text containing a single quote must never come back single-quoted,
// whatever the caller allows.
func TestQuoteNeverSingleQuotesQuotes(t *testing.T) {
	for _, text := range []string{"it's", "don't stop", "'leading", "trailing'"} {
		got := Quote(text, true)
		assert.NotEqual(t, byte('\''), got[0], "Quote(%q)", text)
	}
}

// Double-quoted output is a fixed point: every character of the escape
// set inside the result is backslash-prefixed.
func TestQuoteEscapingIsComplete(t *testing.T) {
	got := Quote("a\"b`c$d\\e f", false)
	body := got[1 : len(got)-1]
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '"', '`', '$':
			assert.Equal(t, byte('\\'), body[i-1], "unescaped %q at %d in %q", body[i], i, got)
		case '\\':
			i++ // escape pair, skip the escaped char
		}
	}
}

func TestComposeLaunchCommand(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	defaultPrefix := filepath.Join("/home/u", ".wine")

	tests := []struct {
		name string
		spec LaunchSpec
		want string
	}{
		{
			"simple executable relative to its directory",
			LaunchSpec{Exe: "/games/Foo/foo.exe", Wine: "wine", WinePrefix: defaultPrefix},
			"wine foo.exe",
		},
		{
			"executable name with spaces",
			LaunchSpec{Exe: "/games/Foo/my game.exe", Wine: "wine", WinePrefix: defaultPrefix},
			`wine "my game.exe"`,
		},
		{
			"custom prefix emits env override",
			LaunchSpec{Exe: "/games/Foo/foo.exe", Wine: "wine", WinePrefix: "/bottles/foo"},
			`env "WINEPREFIX=/bottles/foo" wine foo.exe`,
		},
		{
			"extra args appended verbatim",
			LaunchSpec{Exe: "/games/Foo/foo.exe", Wine: "wine", WinePrefix: defaultPrefix, ExtraArgs: "-windowed -nocd"},
			"wine foo.exe -windowed -nocd",
		},
		{
			"resolution restore wraps in sh -c",
			LaunchSpec{Exe: "/games/Foo/foo.exe", Wine: "wine", WinePrefix: defaultPrefix, RestoreResolution: true},
			`sh -c "wine foo.exe ; xrandr -s 0"`,
		},
		{
			"toggles allow single quoting of inner tokens",
			LaunchSpec{Exe: "/games/Foo/my game.exe", Wine: "wine", WinePrefix: defaultPrefix, RestoreResolution: true},
			`sh -c "wine 'my game.exe' ; xrandr -s 0"`,
		},
		{
			"legacy fullscreen adds pre and post fragments",
			LaunchSpec{Exe: "/games/Foo/foo.exe", Wine: "wine", WinePrefix: defaultPrefix, LegacyFullscreen: true},
			`sh -c "` + legacyFullscreenFragment + ` ; wine foo.exe ; ` + legacyFullscreenFragment + `"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeLaunchCommand(tt.spec))
		})
	}
}

func TestDebugCommand(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	spec := LaunchSpec{
		Exe:        "/games/My Game/game.exe",
		Wine:       "wine",
		WinePrefix: filepath.Join("/home/u", ".wine"),
	}
	assert.Equal(t, `cd '/games/My Game'; wine game.exe`, DebugCommand(spec))
}

package wlcreator

// Display size the desktop environment typically uses for launcher icons.
// More-or-less 64, judging by Kubuntu and Debian screenshots;
// kicontheme.cpp hints that it is normally 32, but that seems wrong.
const IconSize = 64

// IconVariant is one image embedded at a specific index within an icon
// file or icon-group resource.
type IconVariant struct {
	// Position of the image inside its container file.
	// Unique within one container.
	Index int

	// Pixel dimensions of the image.
	Width  int
	Height int

	// Bits per pixel.
	BitDepth int
}

// IconCatalog is the ordered list of variants found in one source file.
//
// A file that lists successfully always yields at least one variant;
// an unlistable file is an error, never an empty catalog.
type IconCatalog []IconVariant

// SourceKind classifies an icon source by what has to happen before its
// images can be listed.
type SourceKind int

const (
	// DirectImage is an already-rasterized or vector image (png, svg, ...)
	// used as-is, with no listing or extraction step.
	DirectImage SourceKind = iota

	// SingleIcon is a standalone .ico file, listable and extractable
	// directly.
	SingleIcon

	// MultiResourceContainer is an executable, dynamic library or icon
	// library whose icon-group resources must first be pulled out into
	// individual .ico files.
	MultiResourceContainer
)

// ThemeEntry records where one distinct icon size was placed inside the
// icon-theme tree.
type ThemeEntry struct {
	Width  int
	Height int

	// Full path of the installed png, of the form
	// <base>/<W>x<H>/apps/<name>.png
	Path string
}

// CandidateIcon is one selectable entry produced by resolving an icon
// source: a preview png plus the .ico file it came from (when any).
type CandidateIcon struct {
	// Short title for a picker, derived from the resource name.
	Title string

	// Path of the preview png (or of the source itself for direct images).
	Preview string

	// Path of the .ico the preview was extracted from. Empty for direct
	// images.
	IcoPath string
}

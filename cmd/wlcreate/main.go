// wlcreate is the headless front end: it drives icon resolution, theme
// tree population and launcher creation from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/shlex"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/zzarko/wlcreator"
	"github.com/zzarko/wlcreator/renderer"
)

var (
	verbose bool

	exePath    string
	name       string
	iconPath   string
	extraArgs  string
	winePrefix string
	wineCmd    string

	launcherDir string
	categories  []string
	executable  bool
	restoreRes  bool
	legacyFS    bool

	selectTitle string
	outDir      string
)

func main() {
	root := &cobra.Command{
		Use:           "wlcreate",
		Short:         "Create desktop launchers for Windows executables run through wine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(listCmd(), iconsCmd(), commandCmd(), debugCmd(), createCmd())

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <icon-file>",
		Short: "List the image variants embedded in an .ico file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := wlcreator.Tools{}.ListVariants(args[0])
			if err != nil {
				return err
			}
			for _, v := range catalog {
				fmt.Printf("index=%d %dx%d %d-bit\n", v.Index, v.Width, v.Height, v.BitDepth)
			}
			best, err := wlcreator.SelectBest(catalog, wlcreator.IconSize)
			if err != nil {
				return err
			}
			fmt.Printf("best for size %d: index=%d\n", wlcreator.IconSize, best.Index)
			return nil
		},
	}
}

func iconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons <source>",
		Short: "Resolve an icon source (exe, dll, icl, ico, png, svg) into candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tools := wlcreator.Tools{}
			if err := tools.Check(); err != nil {
				return fmt.Errorf("icoutils not available: %w", err)
			}

			session, err := wlcreator.NewSession(tools)
			if err != nil {
				return err
			}
			defer session.Close()

			candidates, err := session.Resolve(args[0])
			if err != nil {
				return err
			}

			for _, c := range candidates {
				fmt.Println(c.Title)
				if outDir == "" {
					continue
				}
				img, err := renderer.Preview(c.Preview, wlcreator.IconSize)
				if err != nil {
					return err
				}
				dest := filepath.Join(outDir, c.Title+".png")
				if err := renderer.SavePNG(img, dest); err != nil {
					return err
				}
				slog.Info("wrote preview", "path", dest)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "write size-normalized previews into this directory")
	return cmd
}

func launchFlags(cmd *cobra.Command) {
	settings := wlcreator.LoadSettings(wlcreator.SettingsPath())
	cmd.Flags().StringVar(&exePath, "exe", "", "path to the Windows executable")
	cmd.Flags().StringVar(&extraArgs, "args", "", "extra arguments passed to the application")
	cmd.Flags().StringVar(&winePrefix, "prefix", settings.WinePrefix, "wine prefix (bottle)")
	cmd.Flags().StringVar(&wineCmd, "wine", settings.Wine, "command used to run Windows applications")
	cmd.Flags().BoolVar(&restoreRes, "restore-resolution", false, "run xrandr -s 0 after the application exits")
	cmd.Flags().BoolVar(&legacyFS, "legacy-fullscreen", false, "toggle Compiz legacy fullscreen support around the run")
	cmd.MarkFlagRequired("exe")
}

func buildSpec() (wlcreator.LaunchSpec, error) {
	abs, err := filepath.Abs(exePath)
	if err != nil {
		return wlcreator.LaunchSpec{}, err
	}
	if extraArgs != "" {
		if _, err := shlex.Split(extraArgs); err != nil {
			return wlcreator.LaunchSpec{}, fmt.Errorf("unparseable --args %q: %w", extraArgs, err)
		}
	}
	return wlcreator.LaunchSpec{
		Exe:               abs,
		Wine:              wineCmd,
		WinePrefix:        winePrefix,
		ExtraArgs:         extraArgs,
		RestoreResolution: restoreRes,
		LegacyFullscreen:  legacyFS,
	}, nil
}

func commandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "command",
		Short: "Print the command line a launcher would execute",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildSpec()
			if err != nil {
				return err
			}
			fmt.Println(wlcreator.ComposeLaunchCommand(spec))
			return nil
		},
	}
	launchFlags(cmd)
	return cmd
}

func debugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Launch the application and show its combined output",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildSpec()
			if err != nil {
				return err
			}
			command := wlcreator.DebugCommand(spec)
			fmt.Println("COMMAND:", command)

			sh := exec.Command("sh", "-c", command)
			out, err := sh.CombinedOutput()
			if len(out) > 0 {
				fmt.Printf("OUTPUT:\n%s", out)
			}
			if err != nil {
				return err
			}
			return nil
		},
	}
	launchFlags(cmd)
	return cmd
}

func createCmd() *cobra.Command {
	settings := wlcreator.LoadSettings(wlcreator.SettingsPath())
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the launcher and install its icon theme files",
		RunE: func(cmd *cobra.Command, args []string) error {
			tools := wlcreator.Tools{}
			if err := tools.Check(); err != nil {
				return fmt.Errorf("icoutils not available: %w", err)
			}

			spec, err := buildSpec()
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(filepath.Dir(spec.Exe))
			}
			if iconPath == "" {
				iconPath = spec.Exe
			}

			session, err := wlcreator.NewSession(tools)
			if err != nil {
				return err
			}
			defer session.Close()

			source := iconPath
			if wlcreator.KindOfSource(iconPath) == wlcreator.MultiResourceContainer {
				candidates, err := session.Resolve(iconPath)
				if err != nil {
					return err
				}
				source = candidates[0].IcoPath
				if selectTitle != "" {
					source = ""
					for _, c := range candidates {
						if c.Title == selectTitle {
							source = c.IcoPath
							break
						}
					}
					if source == "" {
						return fmt.Errorf("no icon resource named %q in %s", selectTitle, iconPath)
					}
				}
			}

			path, err := wlcreator.CreateLauncher(session, wlcreator.LauncherConfig{
				Spec:        spec,
				Name:        name,
				IconSource:  source,
				LauncherDir: launcherDir,
				Categories:  categories,
				Executable:  executable,
			})
			if err != nil {
				return err
			}
			slog.Info("launcher created", "path", path)

			settings.Wine = spec.Wine
			settings.WinePrefix = spec.WinePrefix
			settings.LauncherDir = launcherDir
			settings.ExecutableIcon = executable
			if err := wlcreator.SaveSettings(wlcreator.SettingsPath(), settings); err != nil {
				slog.Warn("could not save settings", "err", err)
			}
			return nil
		},
	}
	launchFlags(cmd)
	cmd.Flags().StringVar(&name, "name", "", "launcher name (defaults to the executable's directory name)")
	cmd.Flags().StringVar(&iconPath, "icon", "", "icon source (defaults to the executable)")
	cmd.Flags().StringVar(&selectTitle, "select", "", "icon resource title to use from a container source")
	cmd.Flags().StringVar(&launcherDir, "launcher-dir", settings.LauncherDir, "directory the .desktop file is created in")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "desktop entry categories")
	cmd.Flags().BoolVar(&executable, "executable", settings.ExecutableIcon, "make the .desktop file executable")
	return cmd
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/githubnext/gh-tidy-annotate/pkg/annotate"
	"github.com/githubnext/gh-tidy-annotate/pkg/config"
	"github.com/githubnext/gh-tidy-annotate/pkg/console"
	"github.com/githubnext/gh-tidy-annotate/pkg/constants"
	"github.com/githubnext/gh-tidy-annotate/pkg/tidy"
	"github.com/spf13/cobra"
)

// Package-level version information
var (
	version = "dev"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// ErrUsage is returned when the command is invoked with the wrong number of arguments.
// The usage line has already been printed when it is returned.
var ErrUsage = errors.New("invalid usage")

// UsageLine returns the one-line usage printed on argument errors
func UsageLine() string {
	return fmt.Sprintf("Usage: %s <clang-tidy-log> <source-dir>", constants.CLIName)
}

// AnnotateOptions holds the inputs of a single annotate run
type AnnotateOptions struct {
	LogPath    string
	SourceDir  string
	ConfigPath string
	Summary    bool
	Watch      bool
	Verbose    bool
}

// NewAnnotateCommand creates the root command
func NewAnnotateCommand() *cobra.Command {
	var opts AnnotateOptions

	cmd := &cobra.Command{
		Use:   constants.CLIName + " <clang-tidy-log> <source-dir>",
		Short: "Turn a clang-tidy log into GitHub Actions annotations",
		Long: `Read a clang-tidy log and print one GitHub Actions workflow command per
diagnostic, so warnings and errors show up as annotations on the changed files.

Paths in the log are made relative to <source-dir>. Notes reported at the
same location as a diagnostic are listed under "Fixes:" in its message;
other notes become notice annotations.

Examples:
  ` + constants.CLIName + ` build/clang-tidy.log $GITHUB_WORKSPACE
  ` + constants.CLIName + ` --summary build/clang-tidy.log .
  ` + constants.CLIName + ` -c .tidy-annotate.yml build/clang-tidy.log src
  ` + constants.CLIName + ` --watch build/clang-tidy.log .`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintln(cmd.OutOrStdout(), UsageLine())
				return ErrUsage
			}
			opts.LogPath = args[0]
			opts.SourceDir = args[1]
			return RunAnnotate(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose output on stderr")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file with ignore-checks and ignore-paths (default "+constants.DefaultConfigFile+" when present)")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print a summary table of annotations on stderr")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-emit annotations whenever the log file changes")

	// Flag misuse follows the same contract as a wrong argument count
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), console.FormatErrorMessage(err.Error()))
		fmt.Fprintln(cmd.OutOrStdout(), UsageLine())
		return ErrUsage
	})

	return cmd
}

// NormalizeSourceRoot makes sure the source root ends with a path separator
func NormalizeSourceRoot(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("source directory must not be empty")
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir, nil
}

// resolveConfigPath falls back to the default config file in the working directory
func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
		return constants.DefaultConfigFile
	}
	return ""
}

// RunAnnotate parses the log and writes annotations to stdout. Progress,
// warnings and the optional summary go to stderr.
func RunAnnotate(ctx context.Context, opts AnnotateOptions, stdout, stderr io.Writer) error {
	sourceRoot, err := NormalizeSourceRoot(opts.SourceDir)
	if err != nil {
		return err
	}

	configPath := resolveConfigPath(opts.ConfigPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		// Located errors already start with line:col
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) && cfgErr.Position.Line > 0 {
			return fmt.Errorf("%s:%w", configPath, err)
		}
		return fmt.Errorf("%s: %w", configPath, err)
	}
	if cfg.Summary {
		opts.Summary = true
	}

	if opts.Verbose {
		if configPath != "" {
			fmt.Fprintln(stderr, console.FormatVerboseMessage(fmt.Sprintf("Using config %s", configPath)))
		}
		fmt.Fprintln(stderr, console.FormatVerboseMessage(fmt.Sprintf("Source root: %s", sourceRoot)))
	}

	if opts.Watch {
		return watchLog(ctx, opts, cfg, sourceRoot, stdout, stderr)
	}

	return annotateOnce(opts, cfg, sourceRoot, stdout, stderr)
}

// annotateOnce runs the parse, filter and emit pipeline a single time
func annotateOnce(opts AnnotateOptions, cfg *config.Config, sourceRoot string, stdout, stderr io.Writer) error {
	if opts.Verbose {
		fmt.Fprintln(stderr, console.FormatVerboseMessage(fmt.Sprintf("Parsing %s", opts.LogPath)))
	}

	annotations, err := tidy.ParseFile(opts.LogPath, sourceRoot)
	if err != nil {
		return err
	}

	kept := cfg.Filter().Apply(annotations)
	if opts.Verbose && len(kept) != len(annotations) {
		fmt.Fprintln(stderr, console.FormatVerboseMessage(fmt.Sprintf("Dropped %d annotations matching ignore rules", len(annotations)-len(kept))))
	}

	if err := annotate.Emit(stdout, kept); err != nil {
		return err
	}

	if opts.Summary {
		fmt.Fprint(stderr, console.RenderTable(annotate.Summarize(kept).Table()))
	}

	if opts.Verbose {
		if len(kept) == 0 {
			fmt.Fprintln(stderr, console.FormatWarningMessage("No annotations found in "+opts.LogPath))
		} else {
			fmt.Fprintln(stderr, console.FormatSuccessMessage(fmt.Sprintf("Emitted %d annotations", len(kept))))
		}
	}

	return nil
}

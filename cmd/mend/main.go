// Command mend applies unified-diff patches, including imperfect ones
// produced by language models, by fuzzily locating each hunk's context in
// the target files.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/kvit-s/mend/internal/app"
	"github.com/kvit-s/mend/internal/config"
	"github.com/kvit-s/mend/internal/input"
	"github.com/kvit-s/mend/internal/ui"
)

// Version info set by ldflags at build time
var (
	version = "dev"
)

func main() {
	var (
		configPath   = pflag.String("config", "", "path to config file (default: ~/.config/mend/config.yaml)")
		fuzziness    = pflag.IntP("fuzziness", "f", -1, "matching fuzziness: 0=exact, 1=+whitespace-insensitive, 2=+anchor heuristic")
		threshold    = pflag.Float64P("threshold", "t", 0, "minimum accepted match score for the anchor heuristic")
		useClipboard = pflag.BoolP("clipboard", "c", false, "read the diff from the system clipboard")
		dryRun       = pflag.BoolP("dry-run", "n", false, "show what would change without writing anything")
		revert       = pflag.BoolP("revert", "r", false, "invert the patch and unapply it")
		ciMode       = pflag.Bool("ci", false, "non-interactive mode: ambiguous or missing matches fail")
		targetFile   = pflag.String("file", "", "only apply changes for this target file")
		logPath      = pflag.String("log", "", "log file path (empty to disable)")
		quiet        = pflag.BoolP("quiet", "q", false, "suppress informational output")
		showVersion  = pflag.Bool("version", false, "show version and exit")
	)

	pflag.Usage = func() {
		fmt.Println("Usage: mend [flags] [diff-file]")
		fmt.Println("\nApply a unified diff to files, tolerating drifted context,")
		fmt.Println("whitespace changes, and LLM-mangled formatting.")
		fmt.Println("\nExamples:")
		fmt.Println("  mend my_changes.diff")
		fmt.Println("  mend -c")
		fmt.Println("  git diff | mend -r")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *showVersion {
		fmt.Printf("mend %s\n", version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *fuzziness >= 0 {
		cfg.SetFuzziness(*fuzziness)
	}
	if *threshold > 0 {
		cfg.Match.Threshold = *threshold
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}

	writer := ui.NewWriter(cfg.ColorEnabled(), *quiet)

	logger, err := app.NewLogger(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		writer.Error("Failed to open log file: %v", err)
		os.Exit(1)
	}
	defer logger.Close()

	rawDiff, err := input.Read(pflag.Arg(0), *useClipboard)
	if err != nil {
		if errors.Is(err, input.ErrNoInput) {
			writer.Error("%v", err)
			fmt.Fprintln(os.Stderr)
			pflag.Usage()
		} else {
			writer.Error("%v", err)
		}
		os.Exit(1)
	}

	a := app.New(cfg, writer, logger)
	opts := app.Options{
		DryRun:     *dryRun,
		Revert:     *revert,
		CI:         *ciMode,
		TargetFile: *targetFile,
	}
	if err := a.Run(rawDiff, opts); err != nil {
		writer.Error("%v", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file: an explicit path must exist, the
// default path is optional.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return config.Default(), nil
	}
	defaultPath := filepath.Join(home, ".config", "mend", "config.yaml")
	cfg, err := config.Load(defaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// tskit — Transifex sync and repair tool for Qt TS translation files.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/tskit/config"
	"github.com/minios-linux/tskit/i18n"
	"github.com/minios-linux/tskit/langmeta"
	"github.com/minios-linux/tskit/postprocess"
	"github.com/minios-linux/tskit/transifex"
	"github.com/minios-linux/tskit/tsfile"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// finding prints per-message findings as plain lines, the way the tx-side
// tooling always has; keeps the output greppable per language file.
func finding(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tskit",
		Short: "Sync and repair Qt TS translations from Transifex",
		Long: `tskit — Transifex sync and repair tool for Qt TS translation files.

Pulls translations with the tx client, then post-processes them into a
committable state: strips invalid control characters and location tags,
validates format specifiers against the source strings, repairs common
translator mistakes, clears irreparable translations, prunes unfinished
messages and drops languages with too few messages to ship.

Commands:
  status   Show per-language translation statistics
  pull     Fetch translations using the tx client
  check    Validate translations without modifying files
  sync     Full pipeline: pull, post-process, prune`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newPullCmd(),
		newCheckCmd(),
		newSyncCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tskit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: per-language statistics)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-language translation statistics",
		Long: `Show the detected locale directory and per-language message counts.

Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	files, err := proj.TSFiles()
	if err != nil {
		return err
	}

	absRoot, _ := filepath.Abs(proj.Root)
	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Root:        %s\n", absRoot)
	fmt.Fprintf(os.Stderr, "  Locale dir:  %s\n", proj.LocaleDir)
	fmt.Fprintf(os.Stderr, "  Source file: %s\n", proj.SourceFile)
	fmt.Fprintf(os.Stderr, "  Threshold:   %d messages\n", proj.MinMessages)
	fmt.Fprintln(os.Stderr)

	fmt.Fprintf(os.Stderr, "%sTranslation Statistics%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-10s %-24s %-10s %-10s %-10s\n", "Lang", "Name", "Messages", "Finished", "Unfin.")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 68))

	for _, path := range files {
		code := langmeta.FromFileName(filepath.Base(path))

		doc, err := tsfile.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%-10s %-24s %s\n", code, langmeta.Name(code), "parse error")
			continue
		}
		if doc.Language != "" {
			code = doc.Language
		}

		total, finished, unfinished, _ := doc.Stats()
		fmt.Fprintf(os.Stderr, "%-10s %-24s %-10d %-10d %-10d\n", code, langmeta.Name(code), total, finished, unfinished)
	}

	fmt.Fprintln(os.Stderr)
	logInfo(i18n.T("Languages found: %d"), len(files))
	return nil
}

// ---------------------------------------------------------------------------
// pull (fetch translations via tx)
// ---------------------------------------------------------------------------

func newPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch translations using the tx client",
		Long: `Fetch all translations from Transifex with 'tx pull -f -a'.

Requires a configured .tx/config and the transifex client in PATH.
No post-processing is performed; see 'tskit sync'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull()
		},
	}

	return cmd
}

func runPull() error {
	proj, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	logInfo(i18n.T("Fetching translations from Transifex..."))
	tx := &transifex.Client{Command: proj.TxCommand, Dir: proj.Root}
	if err := tx.Pull(); err != nil {
		return err
	}
	logSuccess(i18n.T("Translations fetched."))
	return nil
}

// ---------------------------------------------------------------------------
// check (validate only, no writes)
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate translations without modifying files",
		Long: `Run the specifier and content-policy checks over all translation
files and report findings. Files are not modified; the exit status is
non-zero when irreparable translations exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}

	return cmd
}

func runCheck() error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	files, err := proj.TSFiles()
	if err != nil {
		return err
	}

	logInfo(i18n.T("Checking %d translation files..."), len(files))

	proc := postprocess.New(proj.MinMessages, finding)
	for _, path := range files {
		doc, err := tsfile.ParseFile(path)
		if err != nil {
			logError("%s: %v", filepath.Base(path), err)
			continue
		}
		if _, err := proc.Document(filepath.Base(path), doc); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr)
	logInfo(i18n.T("Fixable translations: %d"), proc.Result.Fixed)
	logInfo(i18n.T("Languages below the message threshold: %d"), proc.Result.Removed)
	if proc.Result.Fixed > 0 || proc.Result.Removed > 0 {
		logInfo(i18n.T("No files were modified; run 'tskit sync' to apply these changes."))
	}

	if proc.Result.HadErrors {
		return errors.New(i18n.T("some translations are irreparable; run 'tskit sync' to clear them"))
	}
	logSuccess(i18n.T("All translations are valid."))
	return nil
}

// ---------------------------------------------------------------------------
// sync (full pipeline: pull + post-process + prune)
// ---------------------------------------------------------------------------

func newSyncCmd() *cobra.Command {
	var (
		noGitCheck bool
		noPull     bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Full pipeline: pull, post-process, prune",
		Long: `Fetch all translations and post-process them into committable form.

Original files are kept as .orig backups next to the processed files;
an interactive prompt at the end offers to delete them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(noGitCheck, noPull)
		},
	}

	cmd.Flags().BoolVar(&noGitCheck, "no-git-check", false, "Skip the repository root check")
	cmd.Flags().BoolVar(&noPull, "no-pull", false, "Post-process existing files without fetching")

	return cmd
}

func runSync(noGitCheck, noPull bool) error {
	if !noGitCheck {
		if _, err := os.Stat(filepath.Join(rootDir, ".git")); err != nil {
			return errors.New(i18n.T("no .git directory found; run tskit at the repository root (or pass --no-git-check)"))
		}
	}

	proj, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	if !noPull {
		logInfo(i18n.T("Fetching translations from Transifex..."))
		tx := &transifex.Client{Command: proj.TxCommand, Dir: proj.Root}
		if err := tx.Pull(); err != nil {
			return err
		}
	}

	if proj.LocaleDir == "" {
		return fmt.Errorf("no locale directory with .ts files found under %s", rootDir)
	}

	logInfo(i18n.T("Checking and postprocessing..."))

	// Back up every target first; processing then reads only backups, so
	// an interrupted run never leaves a half-written file as the original.
	files, err := proj.TSFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := os.Rename(path, path+config.BackupSuffix); err != nil {
			return fmt.Errorf("backing up %s: %w", path, err)
		}
	}

	backups, err := proj.BackupFiles()
	if err != nil {
		return err
	}

	proc := postprocess.New(proj.MinMessages, finding)
	for _, backup := range backups {
		orig := strings.TrimSuffix(backup, config.BackupSuffix)
		if _, err := proc.File(backup, orig); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr)
	logInfo(i18n.T("Total translations fixed: %d"), proc.Result.Fixed)
	logInfo(i18n.T("Total languages removed: %d"), proc.Result.Removed)

	if confirmDeleteBackups(os.Stdin) {
		deleted := 0
		for _, backup := range backups {
			if err := os.Remove(backup); err != nil {
				logWarning("%v", err)
				continue
			}
			deleted++
		}
		logSuccess(i18n.N("Deleted %d original file.", "Deleted %d original files.", deleted), deleted)
	} else {
		logInfo(i18n.T("Original files not deleted."))
	}

	if proc.Result.HadErrors {
		return errors.New(i18n.T("some translations could not be fixed and were cleared"))
	}
	logSuccess(i18n.T("Sync complete!"))
	return nil
}

// promptAttempts bounds re-prompting on unrecognized input.
const promptAttempts = 3

// confirmDeleteBackups asks whether to delete the .orig backups. Accepted
// answers follow the historical tool: y/Y/yes/Yes and n/N. Unrecognized
// input re-prompts up to promptAttempts times, then defaults to keeping
// the backups.
func confirmDeleteBackups(in io.Reader) bool {
	reader := bufio.NewReader(in)
	for attempt := 0; attempt < promptAttempts; attempt++ {
		fmt.Fprint(os.Stderr, i18n.T("Would you like to delete the original files (Y/N)? "))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.TrimSpace(line) {
		case "y", "Y", "yes", "Yes":
			return true
		case "n", "N":
			return false
		}
		logWarning(i18n.T("No acceptable input given."))
	}
	return false
}

// loadProject loads configuration and fails early when no locale
// directory could be found.
func loadProject() (*config.Project, error) {
	proj, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if proj.LocaleDir == "" {
		return nil, fmt.Errorf("no locale directory with .ts files found under %s", rootDir)
	}
	return proj, nil
}

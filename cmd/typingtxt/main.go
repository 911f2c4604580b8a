// Package main provides the CLI entrypoint for typingtxt.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alpherox/typingtxt/internal/config"
	"github.com/alpherox/typingtxt/internal/session"
	"github.com/alpherox/typingtxt/internal/snapshot"
	"github.com/alpherox/typingtxt/internal/stats"
	"github.com/alpherox/typingtxt/internal/store"
	"github.com/alpherox/typingtxt/internal/textproc"
	"github.com/alpherox/typingtxt/internal/texts"
	"github.com/alpherox/typingtxt/internal/tui"
)

const (
	fallbackWrapWidth = 80
	minWrapWidth      = 10
	wrapMargin        = 4
)

var (
	practiceFile   string
	practiceSave   string
	practiceWidth  int
	practiceNoLoad bool
	practiceTexts  string

	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typingtxt",
		Short:         "Terminal typing game over your own text files",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVarP(&practiceFile, "file", "f", "", "path to a text file to practice (e.g. text/mytext.txt)")
	rootCmd.Flags().StringVarP(&practiceSave, "save", "s", "", "path to a save file (JSON) to load or to save to")
	rootCmd.Flags().IntVar(&practiceWidth, "width", 0, "force a wrap width (default: terminal width - 4)")
	rootCmd.Flags().BoolVar(&practiceNoLoad, "no-loading", false, "skip the loading animation")
	rootCmd.PersistentFlags().StringVar(&practiceTexts, "texts-dir", texts.DefaultDir, "folder scanned for practice texts")

	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "texts-dir", &practiceTexts, fileCfg.Practice.TextsDir)
	applyIntConfig(cmd, "width", &practiceWidth, fileCfg.Practice.WrapWidth)
	applyBoolConfig(cmd, "no-loading", &practiceNoLoad, fileCfg.Practice.NoLoading)

	text, source, usedStdin, err := selectText()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	loaded := loadSavedState(source)

	result, canceled, err := preprocessText(text, resolveWrapWidth(), usedStdin)
	if err != nil {
		return err
	}
	if canceled {
		return nil
	}

	var engine *session.Engine
	if loaded != nil {
		engine = session.Restore(result, source, *loaded)
	} else {
		engine = session.New(result, source)
	}

	var history *store.Store
	if st, err := store.Open(config.DefaultDBPath()); err != nil {
		logErrf("failed to open history db: %v\n", err)
	} else {
		history = st
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close history db: %v\n", cerr)
			}
		}()
	}

	model := tui.NewPractice(engine, history, practiceSave)
	opts := append(ttyInput(usedStdin), tea.WithAltScreen())
	program := tea.NewProgram(model, opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if engine.Started() {
		liveStats := engine.Stats()
		fmt.Printf("Session ended: %.2f WPM, %.2f%% accuracy, score %d\n",
			liveStats.WPM, liveStats.Accuracy, int(engine.Score()))
	}
	return nil
}

// selectText resolves the practice text: the --file flag, the interactive
// picker over the texts folder, or pasted stdin input. An empty text with
// a nil error means the user chose to exit.
func selectText() (text, source string, usedStdin bool, err error) {
	if practiceFile != "" {
		content, err := texts.Load(practiceFile)
		if err != nil {
			logErrf("%v\nFalling back to paste input.\n", err)
			pasted, perr := promptForText()
			return pasted, "", true, perr
		}
		return content, practiceFile, false, nil
	}

	if err := texts.EnsureDir(practiceTexts); err != nil {
		logErrf("%v\n", err)
	}
	files, err := texts.Scan(practiceTexts)
	if err != nil {
		return "", "", false, err
	}
	picker := tui.NewPicker(files)
	program := tea.NewProgram(picker)
	if _, err := program.Run(); err != nil {
		return "", "", false, fmt.Errorf("failed to run picker: %w", err)
	}
	switch {
	case picker.Quit:
		return "", "", false, nil
	case picker.Custom:
		pasted, perr := promptForText()
		return pasted, "", true, perr
	default:
		content, err := texts.Load(picker.Choice)
		if err != nil {
			logErrf("%v\nFalling back to paste input.\n", err)
			pasted, perr := promptForText()
			return pasted, "", true, perr
		}
		return content, picker.Choice, false, nil
	}
}

func promptForText() (string, error) {
	fmt.Println("Typing game — paste or type your custom text.")
	fmt.Println("When done: press Ctrl-D (Linux/macOS) or Ctrl-Z then Enter (Windows).")
	fmt.Println("Leave empty to use a short sample text.")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	content := texts.Normalize(string(data))
	if content == "" {
		content = texts.Sample()
	}
	return content, nil
}

// loadSavedState returns a snapshot to resume from, or nil for a fresh
// session. Load failures are reported and never abort the session.
func loadSavedState(source string) *snapshot.Snapshot {
	if practiceSave != "" {
		if _, err := os.Stat(practiceSave); err != nil {
			return nil
		}
		snap, err := snapshot.Load(practiceSave)
		if err != nil {
			logErrf("failed to load save file %s: %v\n", practiceSave, err)
			return nil
		}
		fmt.Printf("Loaded save from %s. Progress will be restored.\n", practiceSave)
		return &snap
	}
	if source == "" {
		return nil
	}
	defaultSave := snapshot.DefaultPathFor(source)
	if _, err := os.Stat(defaultSave); err != nil {
		return nil
	}
	fmt.Printf("Found a previous save for %q at %q. Continue where you left off? (y/n): ", source, defaultSave)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
		fmt.Println("Starting fresh (not loading save).")
		return nil
	}
	snap, err := snapshot.Load(defaultSave)
	if err != nil {
		logErrf("failed to load save file %s: %v\n", defaultSave, err)
		return nil
	}
	practiceSave = defaultSave
	fmt.Println("Save loaded. Progress will be restored.")
	return &snap
}

func resolveWrapWidth() int {
	if practiceWidth > 0 {
		return practiceWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width := w - wrapMargin
		if width < minWrapWidth {
			width = minWrapWidth
		}
		return width
	}
	return fallbackWrapWidth
}

func preprocessText(text string, wrapWidth int, usedStdin bool) (textproc.Result, bool, error) {
	if practiceNoLoad {
		return textproc.Preprocess(text, wrapWidth, nil), false, nil
	}
	loading := tui.NewLoading(text, wrapWidth)
	program := tea.NewProgram(loading, ttyInput(usedStdin)...)
	if _, err := program.Run(); err != nil {
		logErrf("loading UI failed: %v; preprocessing without animation\n", err)
		return textproc.Preprocess(text, wrapWidth, nil), false, nil
	}
	if loading.Canceled {
		return textproc.Result{}, true, nil
	}
	if !loading.Done {
		return textproc.Preprocess(text, wrapWidth, nil), false, nil
	}
	return loading.Result, false, nil
}

// ttyInput reopens the terminal for key input after stdin was consumed by
// a paste prompt.
func ttyInput(usedStdin bool) []tea.ProgramOption {
	if !usedStdin {
		return nil
	}
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil
	}
	return []tea.ProgramOption{tea.WithInput(tty)}
}

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List practice text files",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "texts-dir", &practiceTexts, fileCfg.Practice.TextsDir)

	files, err := texts.Scan(practiceTexts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logErrf("No text files found in %s. Drop .txt files there to practice them.\n", practiceTexts)
		return fmt.Errorf("no text files found")
	}
	for _, file := range files {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(file)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain summary instead of the TUI")
	return cmd
}

func runHistoryCmd(_ *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sessions, err := st.ListSessions(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if historyPlain {
		return stats.RenderSummary(os.Stdout, sessions)
	}
	model := tui.NewHistory(sessions)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typingtxt configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# texts-dir = %q   # Folder scanned for practice texts
# wrap-width = 0      # Force a wrap width (0 = terminal width - 4)
# no-loading = false  # Skip the loading animation
`, texts.DefaultDir)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// Package main provides the CLI entrypoint for typecore.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typecore/internal/audio"
	"github.com/verte-zerg/typecore/internal/catalog"
	"github.com/verte-zerg/typecore/internal/config"
	"github.com/verte-zerg/typecore/internal/model"
	"github.com/verte-zerg/typecore/internal/stats"
	"github.com/verte-zerg/typecore/internal/store"
	"github.com/verte-zerg/typecore/internal/tui"
)

const (
	defaultCategory = string(model.CategoryBasic)
	defaultLang     = "en"
	defaultWords    = 25
	defaultCaps     = 0.5
	defaultPunct    = 0.5
	defaultVolume   = 0.8
)

const defaultPunctSet = ".,!?;:\"'{}()[]-=/<>`"

var (
	practiceCategory string
	practiceExercise string
	practiceSound    bool
	practiceVolume   float64
	practiceLang     string
	practiceWords    int
	practiceCaps     float64
	practicePunct    float64
	practicePunctSet string

	listCategory string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typecore",
		Short:         "Terminal typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceCategory, "category", defaultCategory, "exercise category (basic, english, poetry, words)")
	rootCmd.Flags().StringVar(&practiceExercise, "exercise", "", "exercise id (see: typecore list)")
	rootCmd.Flags().BoolVar(&practiceSound, "sound", true, "play keystroke sounds")
	rootCmd.Flags().Float64Var(&practiceVolume, "volume", defaultVolume, "sound volume (0-1)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "word drill language code")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per drill")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	fileCfg = fileCfg.WithEnv(envCfg)
	applyStringConfig(cmd, "category", &practiceCategory, fileCfg.Practice.Category)
	applyStringConfig(cmd, "exercise", &practiceExercise, fileCfg.Practice.Exercise)
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyBoolConfig(cmd, "sound", &practiceSound, fileCfg.Sound.Enabled)
	applyFloatConfig(cmd, "volume", &practiceVolume, fileCfg.Sound.Volume)

	cfg := model.Config{
		Category:   model.Category(strings.ToLower(strings.TrimSpace(practiceCategory))),
		ExerciseID: strings.TrimSpace(practiceExercise),
		Sound:      practiceSound,
		Volume:     practiceVolume,
		Lang:       practiceLang,
		Words:      practiceWords,
		CapsPct:    practiceCaps,
		PunctPct:   practicePunct,
		PunctSet:   practicePunctSet,
	}
	if cfg.ExerciseID != "" && !cmd.Flags().Changed("category") {
		cfg.Category = ""
	}
	if cmd.Flags().Changed("category") && !cmd.Flags().Changed("exercise") {
		cfg.ExerciseID = ""
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typecore needs an interactive terminal")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	cat, err := loadCatalog(cmd.Context(), st)
	if err != nil {
		return err
	}

	var words []string
	if cfg.Category == model.CategoryWords {
		words, err = loadDrillWords(cat, cfg.Lang)
		if err != nil {
			return err
		}
	}
	ex, next, err := pickExercise(cat, cfg, newDrill(cfg, words))
	if err != nil {
		return err
	}

	player := newPlayer(cfg)
	defer player.Close()

	m := tui.NewModel(ex, next, player)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if m.Engine().Status() == model.StatusFinished {
		if err := stats.RenderResult(cmd.OutOrStdout(), resultTitle(m.Exercise()), m.Engine().Stats()); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

func newPlayer(cfg model.Config) *audio.Player {
	var sink audio.Sink
	speakerSink, err := audio.NewSpeakerSink(audio.SampleRate)
	if err != nil {
		if cfg.Sound {
			logErrf("sound disabled: %v\n", err)
		}
	} else {
		sink = speakerSink
	}
	return audio.NewPlayer(sink, audio.SampleRate, cfg.Volume, cfg.Sound)
}

func openStore() (*store.Store, error) {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func loadCatalog(ctx context.Context, st *store.Store) (*catalog.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	builtin, err := catalog.Builtin()
	if err != nil {
		return nil, err
	}
	imported, err := st.ListExercises(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load imported exercises: %w", err)
	}
	return catalog.New(builtin, imported), nil
}

func resultTitle(ex model.Exercise) string {
	if ex.Title != "" {
		return ex.Title
	}
	return ex.ID
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available exercises",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listCategory, "category", "", "category filter")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	category := model.Category(strings.ToLower(strings.TrimSpace(listCategory)))
	if category != "" && !category.Valid() {
		return fmt.Errorf("--category must be one of %s", categoryNames())
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	cat, err := loadCatalog(cmd.Context(), st)
	if err != nil {
		return err
	}
	exercises := cat.All()
	if category != "" {
		exercises = cat.ByCategory(category)
	}
	for _, line := range exerciseTable(exercises) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func exerciseTable(exercises []model.Exercise) []string {
	rows := make([][]string, 0, len(exercises))
	for _, ex := range exercises {
		rows = append(rows, []string{
			ex.ID,
			string(ex.Category),
			resultTitle(ex),
			fmt.Sprintf("%d", len([]rune(ex.Content))),
		})
	}
	table := stats.Table{
		Headers:    []string{"ID", "Category", "Title", "Chars"},
		Rows:       rows,
		RightAlign: map[int]bool{3: true},
		MaxWidth:   map[int]int{2: 40},
	}
	return table.Lines()
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Import exercises from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	exercises, err := catalog.DecodeFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read exercises: %w", err)
	}
	if len(exercises) == 0 {
		return fmt.Errorf("no exercises found in %s", args[0])
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	n, err := st.UpsertExercises(cmd.Context(), exercises)
	if err != nil {
		return fmt.Errorf("failed to import exercises: %w", err)
	}
	logErrf("Imported %d exercises\n", n)
	return nil
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an imported exercise",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	deleted, err := st.DeleteExercise(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove exercise: %w", err)
	}
	if !deleted {
		return fmt.Errorf("no imported exercise with id %q", args[0])
	}
	logErrf("Removed %s\n", args[0])
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
	if err := writeConfigTemplate(path); err != nil {
		return err
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

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
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
	return nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typecore configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# category = %q       # basic, english, poetry or words
# exercise = ""          # Exercise id (see: typecore list)
# lang = %q             # Word drill language code
# words = %d             # Words per drill
# caps = %.2f            # Probability of capitalized first letter (0-1)
# punct = %.2f           # Punctuation probability per word (0-1)
# punct-set = %q         # Punctuation set

[sound]
# enabled = true         # Play keystroke sounds
# volume = %.2f          # Sound volume (0-1)
`,
		defaultCategory,
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultVolume,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Category != "" && !cfg.Category.Valid() {
		return fmt.Errorf("--category must be one of %s", categoryNames())
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	if cfg.Category != model.CategoryWords {
		return nil
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" && cfg.PunctPct > 0 {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func categoryNames() string {
	names := make([]string, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		names = append(names, string(cat))
	}
	return strings.Join(names, ", ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// Package cli provides the wordle-solver command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/render"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Version is set at build time.
var Version = "dev"

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	wordsFile  string
	logLevel   string
	guesser    string
	opener     string
	scout      bool
	noColor    bool
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "wordle-solver",
		Short: "Wordle guess strategy engine",
		Long: `wordle-solver proposes Wordle guesses from a word list, filters the
candidates with the feedback of each guess and measures strategies over
many games.

Feedback codes are five characters: G = correct spot, Y = wrong spot,
. = not in word.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := app.root.PersistentFlags()
	pf.StringVarP(&app.configPath, "config", "c", "", "Path to YAML config (default wordle.yaml)")
	pf.StringVarP(&app.wordsFile, "words", "w", "", "Word list file (.txt, .tsv, .yaml); embedded list when empty")
	pf.StringVar(&app.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVarP(&app.guesser, "guesser", "g", "", "Scorer: positional, letters, entropy or hybrid")
	pf.StringVar(&app.opener, "opener", "", "First guess; \"none\" lets the scorer choose")
	pf.BoolVar(&app.scout, "letter-scout", false, "Spend a guess on a letter scout when one or two slots are left")
	pf.BoolVar(&app.noColor, "no-color", false, "Disable coloured tiles")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newPlayCmd(),
		app.newAssistCmd(),
		app.newBenchCmd(),
		app.newOpenerCmd(),
		app.newServeCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithInput sets the reader used by interactive commands.
func (a *App) WithInput(stdin io.Reader) *App {
	a.stdin = stdin
	a.root.SetIn(stdin)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "wordle-solver version %s\n", Version)
		},
	}
}

// env is what every command needs: the resolved config and the word list.
type env struct {
	cfg  *config.Config
	list *words.List
}

// load resolves configuration (file, environment, persistent flags), sets up
// logging and loads the word list.
func (a *App) load() (*env, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.wordsFile != "" {
		cfg.WordsFile = a.wordsFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.guesser != "" {
		cfg.Scorer = a.guesser
	}
	switch a.opener {
	case "":
	case "none":
		cfg.Solver.Opener = ""
	default:
		cfg.Solver.Opener = a.opener
	}
	if a.scout {
		cfg.Solver.LetterScout = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a.setupLogging(cfg.LogLevel)

	list, err := words.LoadOrDefault(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	if list.Dropped > 0 {
		log.Warn().Int("dropped", list.Dropped).Str("source", list.Source).Msg("skipped malformed words")
	}
	log.Debug().Int("words", len(list.Words)).Str("source", list.Source).Msg("word list loaded")
	return &env{cfg: cfg, list: list}, nil
}

// setupLogging routes zerolog to a console writer on stderr.
func (a *App) setupLogging(level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: !a.colorOut(a.stderr)}).
		With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// colorOut reports whether w is a terminal that should get colours.
func (a *App) colorOut(w io.Writer) bool {
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (a *App) printer() render.Printer {
	return render.Printer{W: a.stdout, Color: a.colorOut(a.stdout)}
}

// engine builds a solver engine from env.
func (e *env) engine() (*solver.Engine, error) {
	scorer, err := solver.ScorerFor(e.cfg.Scorer, e.cfg.Solver)
	if err != nil {
		return nil, err
	}
	return solver.New(e.cfg.Solver, e.list.Words, solver.WithScorer(scorer), solver.WithWeights(e.list.Weights))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/tatianab/kastle/internal/config"
	"github.com/tatianab/kastle/internal/ctxlog"
	"github.com/tatianab/kastle/internal/engine"
	"github.com/tatianab/kastle/internal/hclworld"
	"github.com/tatianab/kastle/internal/models"
	"github.com/tatianab/kastle/internal/sample"
	"github.com/tatianab/kastle/internal/storage/sqlite"
	"github.com/tatianab/kastle/internal/tui"
	"github.com/tatianab/kastle/internal/validate"
)

// Enricher fills in descriptions an author left out.
type Enricher interface {
	FillDescriptions(ctx context.Context, cfg *models.GameConfiguration) (*models.GameConfiguration, error)
	Close()
}

// App runs parsed commands against the configured stores.
type App struct {
	Out    io.Writer
	Config *config.Config

	// Inspect shows a world interactively. Defaults to the terminal UI.
	Inspect func(*models.GameConfiguration) error
	// NewEnricher is called by compile -enrich. Defaults to a Gemini engine.
	NewEnricher func(ctx context.Context, cfg *config.Config) (Enricher, error)
}

// NewApp returns an App with the default inspector and enricher.
func NewApp(out io.Writer, cfg *config.Config) *App {
	return &App{
		Out:     out,
		Config:  cfg,
		Inspect: tui.Run,
		NewEnricher: func(ctx context.Context, cfg *config.Config) (Enricher, error) {
			if err := cfg.RequireGemini(); err != nil {
				return nil, err
			}
			eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return nil, err
			}
			return eng, nil
		},
	}
}

// Run parses args, loads the environment configuration, sets up logging
// on errOut and executes the command.
func Run(ctx context.Context, out, errOut io.Writer, args []string) error {
	cmd, shouldExit, err := Parse(args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.LogLevel == "" {
		cmd.LogLevel = cfg.LogLevel
	}
	if cmd.LogFormat == "" {
		cmd.LogFormat = cfg.LogFormat
	}
	logger, err := ctxlog.New(errOut, cmd.LogFormat, cmd.LogLevel)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	return NewApp(out, cfg).Execute(ctx, cmd)
}

// Execute runs a single parsed command.
func (a *App) Execute(ctx context.Context, cmd *Command) error {
	ctxlog.FromContext(ctx).Debug("Executing command.", "command", cmd.Name)
	switch cmd.Name {
	case "compile":
		return a.compile(ctx, cmd)
	case "validate":
		return a.validate(ctx, cmd)
	case "list":
		return a.list(ctx)
	case "show":
		return a.show(ctx, cmd.WorldName)
	case "delete":
		return a.delete(ctx, cmd.WorldName)
	case "inspect":
		return a.inspect(ctx, cmd.Path)
	case "demo":
		return a.demo(ctx, cmd.Save)
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cmd.Name)}
	}
}

func (a *App) compile(ctx context.Context, cmd *Command) error {
	logger := ctxlog.FromContext(ctx)

	world, err := hclworld.NewLoader().Load(ctx, cmd.Path)
	if err != nil {
		return err
	}
	if report := validate.Check(world); !report.OK() {
		logger.Warn("World has integrity issues, run validate for details.", "count", len(report.Issues))
	}

	if cmd.Enrich {
		enricher, err := a.NewEnricher(ctx, a.Config)
		if err != nil {
			return fmt.Errorf("create enricher: %w", err)
		}
		defer enricher.Close()
		if world, err = enricher.FillDescriptions(ctx, world); err != nil {
			return fmt.Errorf("enrich world: %w", err)
		}
	}

	name := cmd.WorldName
	if name == "" {
		name = worldName(cmd.Path)
	}
	if err := a.store(ctx, name, world); err != nil {
		return err
	}

	switch cmd.Output {
	case "":
	case "-":
		if err := models.EncodeYAML(a.Out, world); err != nil {
			return err
		}
	default:
		if err := writeYAML(cmd.Output, world); err != nil {
			return err
		}
	}

	if cmd.Output != "-" {
		fmt.Fprintf(a.Out, "Compiled world %q: %d rooms, %d items, %d characters.\n",
			name, len(world.Rooms), len(world.Items), len(world.Characters))
	}
	return nil
}

func (a *App) validate(ctx context.Context, cmd *Command) error {
	world, err := hclworld.NewLoader().Load(ctx, cmd.Path)
	if err != nil {
		return err
	}

	report := validate.Check(world)
	if report.OK() {
		fmt.Fprintln(a.Out, "World is valid.")
		return nil
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(a.Out, "- %s\n", issue.Error())
	}
	return &ExitError{Code: 1, Message: fmt.Sprintf("%d issues found", len(report.Issues))}
}

func (a *App) list(ctx context.Context) error {
	db, err := sqlite.Open(a.Config.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	worlds, err := db.List(ctx)
	if err != nil {
		return err
	}
	files, err := models.NewStore(a.Config.SaveDir).List()
	if err != nil {
		return fmt.Errorf("list save directory: %w", err)
	}

	inDB := map[string]bool{}
	for _, s := range worlds {
		inDB[s.Name] = true
	}
	var filesOnly []string
	for _, name := range files {
		if !inDB[name] {
			filesOnly = append(filesOnly, name)
		}
	}

	if len(worlds) == 0 && len(filesOnly) == 0 {
		fmt.Fprintln(a.Out, "No worlds stored.")
		return nil
	}

	if len(worlds) > 0 {
		w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE\tROOMS\tITEMS\tCHARACTERS\tSAVED")
		for _, s := range worlds {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
				s.Name, s.Title, s.RoomCount, s.ItemCount, s.CharacterCount, s.SavedAt.Format("2006-01-02 15:04"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if len(filesOnly) > 0 {
		fmt.Fprintf(a.Out, "Only in %s: %s\n", a.Config.SaveDir, strings.Join(filesOnly, ", "))
	}
	return nil
}

func (a *App) show(ctx context.Context, name string) error {
	world, err := a.load(ctx, name)
	if err != nil {
		return err
	}
	return models.EncodeYAML(a.Out, world)
}

func (a *App) delete(ctx context.Context, name string) error {
	db, err := sqlite.Open(a.Config.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Deleted world %q.\n", name)
	return nil
}

func (a *App) inspect(ctx context.Context, target string) error {
	var (
		world *models.GameConfiguration
		err   error
	)
	if _, statErr := os.Stat(target); statErr == nil {
		world, err = hclworld.NewLoader().Load(ctx, target)
	} else {
		world, err = a.load(ctx, target)
	}
	if err != nil {
		return err
	}
	return a.Inspect(world)
}

func (a *App) demo(ctx context.Context, save bool) error {
	world := sample.World()
	if save {
		if err := a.store(ctx, sample.Name, world); err != nil {
			return err
		}
	}
	return models.EncodeYAML(a.Out, world)
}

// store writes world to both the YAML file store and the database.
func (a *App) store(ctx context.Context, name string, world *models.GameConfiguration) error {
	if err := models.NewStore(a.Config.SaveDir).Save(name, world); err != nil {
		return fmt.Errorf("save world file: %w", err)
	}

	db, err := sqlite.Open(a.Config.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Save(ctx, name, world); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("World stored.", "name", name)
	return nil
}

// load reads a stored world from the database, falling back to the file
// store for worlds saved before the database existed.
func (a *App) load(ctx context.Context, name string) (*models.GameConfiguration, error) {
	db, err := sqlite.Open(a.Config.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	world, err := db.Load(ctx, name)
	if !errors.Is(err, sqlite.ErrNotFound) {
		return world, err
	}
	ctxlog.FromContext(ctx).Debug("World not in database, trying save directory.", "name", name)
	return models.NewStore(a.Config.SaveDir).Load(name)
}

func writeYAML(path string, world *models.GameConfiguration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := models.EncodeYAML(f, world); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func worldName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixdeck/internal/loading"
	"github.com/desertthunder/mixdeck/internal/repositories"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	input    io.Reader
	palette  *ui.Palette
	registry *loading.Registry

	db      *sql.DB
	dbErr   error
	opened  bool
	state   *repositories.StateStore
	records *repositories.RecordRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Input   io.Reader
	Palette *ui.Palette
	// DB skips opening the configured database when set.
	DB *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Palette == nil {
		opts.Palette = ui.Styles
	}

	r := &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		input:    opts.Input,
		palette:  opts.Palette,
		registry: loading.NewRegistry(opts.Logger),
	}
	if opts.DB != nil {
		r.attach(opts.DB)
	}
	return r
}

func (r *Runner) attach(db *sql.DB) {
	r.db = db
	r.opened = true
	r.state = repositories.NewStateStore(db, r.logger)
	r.records = repositories.NewRecordRepository(db)
}

// database opens the configured database on first use.
//
// When it cannot be opened the state store keeps working on its fallback and the error is returned
// to commands that need the record index.
func (r *Runner) database() (*sql.DB, error) {
	if r.opened {
		return r.db, r.dbErr
	}
	r.opened = true

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.dbErr = fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		r.state = repositories.NewStateStore(nil, r.logger)
		return nil, r.dbErr
	}
	r.attach(db)
	return db, nil
}

func (r *Runner) stateStore() *repositories.StateStore {
	if _, err := r.database(); err != nil {
		r.logger.Debug("state store running without database", "error", err)
	}
	return r.state
}

func (r *Runner) recordRepository() (*repositories.RecordRepository, error) {
	if _, err := r.database(); err != nil {
		return nil, err
	}
	return r.records, nil
}

// Close releases the database if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, uriCommand, imagesCommand, formatCommand, collectCommand, rangeCommand,
		libraryCommand, stateCommand, indexCommand, idCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", r.palette.Title(title))
	r.writePlain("═══════════════════════════════════════\n")
}

// openInput returns the file named by path, or the runner input for "" and "-".
func (r *Runner) openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(r.input), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return f, nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/buildinfo"
	"github.com/hhforecast/household-forecast/internal/calculation"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/internal/storage"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	storeDir string
	key      string
	now      string
	debug    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "hhforecast",
		Short:   "Household cash-flow forecasting",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.storeDir, "store", ".hhforecast", "directory holding saved households")
	rootCmd.PersistentFlags().StringVar(&opts.key, "key", storage.DefaultKey, "household record to operate on")
	rootCmd.PersistentFlags().StringVar(&opts.now, "now", "", "treat this date (YYYY-MM or YYYY-MM-DD) as today")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log calculation details to stderr")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newProjectCommand(opts),
		newCoreBalanceCommand(opts),
		newBalanceCommand(opts),
		newScenarioCommand(opts),
		newAccountCommand(opts),
		newMemberCommand(opts),
		newLoanCommand(opts),
		newRecurringCommand(opts),
		newEventCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}

func (o *options) store() *storage.FileStore {
	return storage.NewFileStore(o.storeDir)
}

// clock resolves --now into a time source.
func (o *options) clock() (func() time.Time, error) {
	if o.now == "" {
		return time.Now, nil
	}
	for _, layout := range []string{"2006-01-02", dateutil.YearMonthLayout} {
		if t, err := time.Parse(layout, o.now); err == nil {
			return func() time.Time { return t }, nil
		}
	}
	return nil, fmt.Errorf("invalid --now %q: want YYYY-MM or YYYY-MM-DD", o.now)
}

func (o *options) engine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	now, err := o.clock()
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine()
	engine.Now = now
	engine.Debug = o.debug
	engine.SetLogger(calculation.NewStdLogger(cmd.ErrOrStderr(), o.debug))
	return engine, nil
}

// load reads the household. An unreadable record is reported and replaced by defaults.
func (o *options) load(cmd *cobra.Command) (*domain.DataModel, error) {
	m, err := o.store().Load(context.Background(), o.key)
	if err != nil {
		if !errors.Is(err, storage.ErrLoadFailed) {
			return nil, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; continuing with an empty household\n", err)
	}
	return m, nil
}

// loadForUpdate is load for commands that save afterwards. An unreadable record
// is moved aside first so the save cannot destroy it.
func (o *options) loadForUpdate(cmd *cobra.Command) (*domain.DataModel, error) {
	store := o.store()
	ctx := context.Background()
	m, err := store.Load(ctx, o.key)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, storage.ErrLoadFailed) {
		return nil, err
	}
	bad, qerr := store.Quarantine(ctx, o.key)
	if qerr != nil {
		return nil, fmt.Errorf("%v; refusing to overwrite it: %w", err, qerr)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; kept the unreadable record as %s and started an empty household\n", err, bad)
	return m, nil
}

func (o *options) save(m *domain.DataModel) error {
	return o.store().Save(context.Background(), o.key, m)
}

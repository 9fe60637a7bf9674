package mainfuncs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/dontcallmebro/BQL-APP/data"
	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
	"github.com/dontcallmebro/BQL-APP/util"
	"github.com/dontcallmebro/BQL-APP/utils"
)

// Options configure a batch calibration.
type Options struct {
	Input     string
	Output    string
	Synthetic bool
	// Tenors restricts the run. Empty means every tenor in the input.
	Tenors   []string
	Beta     float64
	Parallel bool
	Persist  bool
	Progress bool
}

// Calibrate loads quotes, fits every row and writes the results. With Persist set the
// results are also upserted into the database described by config.
func Calibrate(ctx context.Context, opts Options, config util.Config, log zerolog.Logger) (data.Report, error) {
	if opts.Beta < 0 || opts.Beta > 1 {
		return data.Report{}, fmt.Errorf("beta must lie in [0, 1], got %v", opts.Beta)
	}
	rows, err := loadRows(opts)
	if err != nil {
		return data.Report{}, err
	}
	if len(opts.Tenors) > 0 {
		rows, err = filterTenors(rows, opts.Tenors)
		if err != nil {
			return data.Report{}, err
		}
	}
	log.Info().Int("rows", len(rows)).Float64("beta", opts.Beta).Bool("parallel", opts.Parallel).Msg("calibrating")

	pipeline := data.NewPipeline(opts.Beta, log)
	if opts.Progress {
		bar := data.ProgressBar(len(rows), "calibrating")
		pipeline.OnRow = func() { _ = bar.Add(1) }
		defer bar.Finish()
	}

	run := pipeline.Run
	if opts.Parallel {
		run = pipeline.RunByTenor
	}
	report, _, err := run(ctx, rows, data.NewWarmStart())
	if err != nil {
		return report, err
	}
	for reason, n := range report.Count() {
		log.Warn().Str("reason", reason).Int("rows", n).Msg("rows skipped")
	}

	if opts.Output != "" {
		if err := data.WriteResultsFile(opts.Output, report.Results); err != nil {
			return report, err
		}
		log.Info().Str("path", opts.Output).Int("results", len(report.Results)).Msg("results written")
	}

	if opts.Persist {
		conn, err := openDB(config)
		if err != nil {
			return report, err
		}
		defer conn.Close()
		if err := Persist(ctx, db.NewStore(conn), report.Results); err != nil {
			return report, err
		}
		log.Info().Int("results", len(report.Results)).Msg("results stored")
	}
	return report, nil
}

// Persist upserts results in a single transaction.
func Persist(ctx context.Context, store db.Store, results []data.CalibrationResult) error {
	if len(results) == 0 {
		return nil
	}
	args := make([]db.InsertCalibrationParams, len(results))
	for i, res := range results {
		args[i] = db.CalibrationParams(res)
	}
	_, err := store.SaveCalibrations(ctx, args)
	return err
}

func loadRows(opts Options) ([]data.Row, error) {
	if opts.Synthetic {
		cfg := data.DefaultSyntheticConfig()
		cfg.Beta = opts.Beta
		rows, _, err := data.Synthetic(cfg)
		return rows, err
	}
	if opts.Input == "" {
		return nil, errors.New("an input file or the synthetic series is required")
	}
	return data.LoadRows(opts.Input)
}

func filterTenors(rows []data.Row, tenors []string) ([]data.Row, error) {
	kept, _, err := utils.Filter(tenors, data.Tenors())
	if err != nil {
		return nil, fmt.Errorf("tenors %v: %w", tenors, err)
	}
	want := make(map[string]bool, len(kept))
	for _, t := range kept {
		want[t] = true
	}
	var out []data.Row
	for _, row := range rows {
		if want[data.NormalizeTenor(row.Tenor)] {
			out = append(out, row)
		}
	}
	return out, nil
}

func openDB(config util.Config) (*sql.DB, error) {
	if config.DBSource == "" {
		return nil, errors.New("DB_SOURCE is not set")
	}
	conn, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}
	return conn, nil
}

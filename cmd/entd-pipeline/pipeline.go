package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/entd-longdistance/converter"
	"github.com/theoremus-urban-solutions/entd-longdistance/demand"
	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/formatter"
	"github.com/theoremus-urban-solutions/entd-longdistance/store"
)

// Output file names of the cleaning stage besides the trips file.
const (
	householdsFile = "households.csv"
	personsFile    = "persons.csv"
	summaryFile    = "summary.json"
)

// resolve joins a relative path onto base; empty stays empty.
func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func (a *app) clean(ctx context.Context) (*converter.Result, error) {
	cfg := a.cfg
	startedAt := time.Now().UTC()

	done := a.metrics.StartStage("validate")
	inputs, err := entd.Validate(cfg.DataPath)
	done()
	if err != nil {
		return nil, classify(err)
	}

	done = a.metrics.StartStage("load")
	extract, cacheHit, err := entd.LoadCached(func() (*entd.Extract, error) {
		return entd.Load(ctx, cfg.DataPath, a.logger)
	}, cfg.CachePath, inputs)
	done()
	if err != nil {
		return nil, classify(err)
	}
	a.metrics.RecordExtract(extract)
	a.logger.Info("loaded ENTD extract", zap.Bool("cache_hit", cacheHit))

	done = a.metrics.StartStage("clean")
	cleaner := converter.NewCleaner(converter.Options{
		StrictForeignKeys: cfg.StrictForeignKeys,
		ChainWorkers:      cfg.ChainWorkers,
	}, a.logger)
	result, err := cleaner.Clean(ctx, extract)
	done()
	if err != nil {
		return nil, classify(err)
	}
	a.metrics.RecordCleaning(result)

	done = a.metrics.StartStage("write")
	defer done()
	outputs := []struct {
		path  string
		write func(io.Writer) error
	}{
		{resolve(cfg.OutputPath, cfg.TripsFile), func(w io.Writer) error { return formatter.WriteTrips(w, result.Trips) }},
		{filepath.Join(cfg.OutputPath, householdsFile), func(w io.Writer) error { return formatter.WriteHouseholds(w, result.Households) }},
		{filepath.Join(cfg.OutputPath, personsFile), func(w io.Writer) error { return formatter.WritePersons(w, result.Persons) }},
	}
	summary := formatter.NewSummary(a.runID, startedAt, inputs, result)
	summary.CacheHit = cacheHit
	for _, o := range outputs {
		if err := formatter.WriteFile(o.path, o.write); err != nil {
			return nil, withCode(exitOutput, err)
		}
		summary.Outputs = append(summary.Outputs, o.path)
	}

	if cfg.SQLitePath != "" {
		if err := a.saveSQLite(ctx, resolve(cfg.OutputPath, cfg.SQLitePath), result); err != nil {
			return nil, withCode(exitOutput, err)
		}
		summary.Outputs = append(summary.Outputs, resolve(cfg.OutputPath, cfg.SQLitePath))
	}

	summary.FinishedAt = time.Now().UTC()
	summaryPath := filepath.Join(cfg.OutputPath, summaryFile)
	if err := formatter.WriteFile(summaryPath, func(w io.Writer) error { return formatter.WriteSummary(w, summary) }); err != nil {
		return nil, withCode(exitOutput, err)
	}

	a.logger.Info("cleaning finished",
		zap.Int("households", len(result.Households)),
		zap.Int("persons", len(result.Persons)),
		zap.Int("trips", len(result.Trips)),
		zap.Int("pruned_vacations", result.Diagnostics.PrunedVacations),
		zap.String("summary", summaryPath))
	return result, nil
}

func (a *app) saveSQLite(ctx context.Context, path string, result *converter.Result) error {
	s, err := store.Open(ctx, path, a.logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveResult(ctx, a.runID, result)
}

func (a *app) jtab(ctx context.Context) error {
	cfg := a.cfg
	j := cfg.JTAB
	paths := demand.Paths{
		Facilities:   resolve(cfg.DataPath, j.FacilitiesFile),
		Zones:        resolve(cfg.DataPath, j.ZonesFile),
		Persons:      resolve(cfg.DataPath, j.PersonsFile),
		Households:   resolve(cfg.DataPath, j.HouseholdsFile),
		Homes:        resolve(cfg.DataPath, j.HomesFile),
		Activities:   resolve(cfg.DataPath, j.ActivitiesFile),
		LocatedTrips: resolve(cfg.DataPath, j.LocatedTripsFile),
		Agents:       resolve(cfg.DataPath, j.AgentsFile),
	}

	done := a.metrics.StartStage("jtab_load")
	in, err := demand.LoadInputs(ctx, paths)
	done()
	if err != nil {
		return classify(err)
	}

	done = a.metrics.StartStage("jtab_prepare")
	out, err := demand.Prepare(ctx, in, demand.Options{
		SamplingRate:        cfg.SamplingRate,
		AgentCount:          j.AgentCount,
		MaxLocateDistanceKm: j.MaxLocateDistanceKm,
	}, a.logger)
	done()
	if err != nil {
		return classify(err)
	}

	done = a.metrics.StartStage("jtab_write")
	dir := resolve(cfg.OutputPath, j.OutputDir)
	written, err := demand.WriteOutputs(dir, out, paths.Agents)
	done()
	if err != nil {
		return withCode(exitOutput, err)
	}
	a.metrics.SetOutputRows("residence", len(out.Residence))
	a.metrics.SetOutputRows("cities", len(out.Cities))
	a.metrics.SetOutputRows("destination_probabilities", len(out.ProbByActivity))
	a.metrics.SetOutputRows("secondary_locations", len(out.SecondaryLocations))

	a.logger.Info("demand preparation finished",
		zap.String("output_dir", dir),
		zap.Int("files", len(written)),
		zap.Int("unmatched_persons", out.UnmatchedPersons))
	return nil
}

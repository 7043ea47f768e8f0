// Package converter cleans the raw ENTD long-distance extract.
//
// The cleaning stage is a sequence of pure steps over the tables read by
// package entd:
//
//  1. identity unification: dense household, person and trip ids and
//     resolved foreign keys
//  2. temporal normalisation: day and clock fields to seconds elapsed since
//     the vacation start day, with past-midnight rollover
//  3. categorical mapping of purpose and mode codes
//  4. chain reconstruction per (person, vacation), run concurrently
//  5. pruning of vacations carrying unknown or invalid times, and
//     household consumption units
//
// # Usage
//
//	extract, _ := entd.Load(ctx, cfg.DataPath, logger)
//	cleaner := converter.NewCleaner(converter.Options{ChainWorkers: 4}, logger)
//	result, err := cleaner.Clean(ctx, extract)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Trips), result.Diagnostics.PrunedVacations)
//
// Data-quality problems never fail the run. They are counted in
// Result.Diagnostics and logged once per kind through WarningAggregator.
// Only with Options.StrictForeignKeys do unresolved references return a
// *ForeignKeyError.
package converter

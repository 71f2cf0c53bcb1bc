package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/consolidate"
	"github.com/aqlanhadi/orcr/extractor/round1"
	"github.com/aqlanhadi/orcr/extractor/round2"
	"github.com/aqlanhadi/orcr/integrations/jsmodule"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoEntries    = errors.New("no allotments extracted")
	ErrUnknownRound = errors.New("unknown round")
)

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".json": true,
	".csv":  true,
	".xlsx": true,
}

type Options struct {
	Round    int
	Strategy round2.Strategy
	Meta     common.Meta
	Defaults common.Defaults
	Lookup   *round2.Lookup
	Load     common.LoadOptions
}

type Result struct {
	Records []common.ConsolidatedRecord `json:"records"`
	Report  common.Report               `json:"report"`
}

// Round2Split returns how many consolidated inputs came from round-2 allotments and
// how many fell back to round 1.
func (r Result) Round2Split() (int, int) {
	return r.Report.RowsRound2, r.Report.RowsRound1Fallback
}

// OptionsFromConfig builds run options for round from the loaded configuration.
func OptionsFromConfig(round int) (Options, error) {
	strategy, err := round2.ParseStrategy(viper.GetString("round2.strategy"))
	if err != nil {
		return Options{}, err
	}

	defaults := common.DefaultDefaults()
	if v := viper.GetString("defaults.quota"); v != "" {
		defaults.Quota = v
	}
	if v := viper.GetString("defaults.category"); v != "" {
		defaults.Category = v
	}
	if v := viper.GetString("defaults.candidate_category"); v != "" {
		defaults.CandidateCategory = v
	}

	load := common.DefaultLoadOptions()
	if v := viper.GetFloat64("pdf.cell_gap"); v > 0 {
		load.CellGap = v
	}
	if v := viper.GetFloat64("pdf.word_gap"); v > 0 {
		load.WordGap = v
	}

	return Options{
		Round:    round,
		Strategy: strategy,
		Meta: common.Meta{
			Year:   viper.GetInt("meta.year"),
			Round:  round,
			Type:   viper.GetString("meta.type"),
			Exam:   viper.GetString("meta.exam"),
			Gender: viper.GetString("meta.gender"),
		},
		Defaults: defaults,
		Load:     load,
	}, nil
}

// LoadLookup reads a round-1 module and indexes it for the smart round-2 strategy.
// A missing file is not an error: the lookup is simply empty.
func LoadLookup(path string, defaults common.Defaults) (*round2.Lookup, error) {
	records, err := jsmodule.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: round 1 module %s not found, category lookup disabled", path)
		return round2.NewLookup(nil, defaults), nil
	}
	if err != nil {
		return nil, err
	}

	log.Printf("📂 Loaded %d round 1 records from %s", len(records), path)
	return round2.NewLookup(records, defaults), nil
}

// ExpandPaths replaces directories with the supported input files they hold.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		log.Println("📂 Scanning ", path)
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}

		var found []string
		for _, e := range entries {
			if e.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			found = append(found, filepath.Join(path, e.Name()))
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	return files, nil
}

// LoadAll reads every input concurrently. Tables are returned in input order.
func LoadAll(ctx context.Context, paths []string, opts common.LoadOptions) ([]common.Table, error) {
	loaded := make([][]common.Table, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			log.Println("📄 Scanning ", path)
			tables, err := common.LoadTablesFromFile(path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			loaded[i] = tables
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var tables []common.Table
	for _, t := range loaded {
		tables = append(tables, t...)
	}
	return tables, nil
}

// Process turns loaded tables into consolidated records for opts.Round.
func Process(tables []common.Table, opts Options) (Result, error) {
	var records []common.AllotmentRecord
	var report common.Report

	switch opts.Round {
	case 1:
		records, report = round1.Extract(tables)
	case 2:
		records, report = round2.Extract(tables, round2.Options{
			Strategy: opts.Strategy,
			Lookup:   opts.Lookup,
			Defaults: opts.Defaults,
		})
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownRound, opts.Round)
	}

	meta := opts.Meta
	meta.Round = opts.Round
	consolidated, stats := consolidate.Consolidate(records, meta)

	report.RunID = uuid.NewString()
	report.Consolidated = stats.Unique
	report.Merged = stats.Merged

	log.Printf("✅ Run %s: %d raw entries, %d consolidated, %d merged", report.RunID, report.Entries, report.Consolidated, report.Merged)
	log.Printf("⊘ Skipped: %d invalid, %d short, %d no upgrade, %d no data", report.RowsInvalid, report.RowsShort, report.RowsNoUpgrade, report.RowsNoData)

	return Result{Records: consolidated, Report: report}, nil
}

// ExecuteAgainstPaths loads, extracts and consolidates the given files or directories.
// It fails with ErrNoEntries when nothing could be extracted.
func ExecuteAgainstPaths(ctx context.Context, paths []string, opts Options) (Result, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return Result{}, err
	}

	tables, err := LoadAll(ctx, files, opts.Load)
	if err != nil {
		return Result{}, err
	}

	return finish(tables, opts)
}

// ProcessReader runs a single uploaded bulletin through the pipeline.
func ProcessReader(reader io.Reader, filename string, opts Options) (Result, error) {
	log.Println("📄 Scanning ", filename)

	tables, err := common.LoadTables(reader, filename, opts.Load)
	if err != nil {
		return Result{}, err
	}

	return finish(tables, opts)
}

func finish(tables []common.Table, opts Options) (Result, error) {
	result, err := Process(tables, opts)
	if err != nil {
		return Result{}, err
	}
	if result.Report.Entries == 0 {
		return result, ErrNoEntries
	}
	return result, nil
}

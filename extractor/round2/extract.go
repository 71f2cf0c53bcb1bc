// Package round2 reads the dual-round bulletin, where each row carries a candidate's
// round-1 allotment next to their round-2 allotment.
package round2

import (
	"log"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/layout"
)

type Options struct {
	Strategy Strategy
	// Lookup supplies round-1 categories to the smart strategy. It may be nil.
	Lookup   *Lookup
	Defaults common.Defaults
}

// Extract returns the round-2 allotments in input order. Dropped rows are counted
// in the report rather than returned as errors.
func Extract(tables []common.Table, opts Options) ([]common.AllotmentRecord, common.Report) {
	if opts.Strategy == "" {
		opts.Strategy = Positional
	}

	minColumns := layout.DualMinColumns
	if opts.Strategy == Smart {
		minColumns = SmartMinColumns
		if opts.Lookup.Len() == 0 {
			log.Println("Warning: no round 1 records loaded, fallback rows get default categories")
		}
	}

	records := []common.AllotmentRecord{}
	report := common.Report{TablesFound: len(tables)}

	for _, table := range tables {
		if len(table.Rows) == 0 || table.Columns() < minColumns {
			log.Printf("⊘ Table %s#%d: %d columns < %d, skipping", table.Source, table.Index, table.Columns(), minColumns)
			report.TablesSkipped++
			continue
		}

		rows := table.Rows
		if IsHeader(rows[0], opts.Strategy) {
			rows = rows[1:]
		}

		found := 0
		for _, row := range rows {
			report.RowsProcessed++

			var record common.AllotmentRecord
			var outcome Outcome

			if opts.Strategy == Smart {
				record, outcome = ParseSmart(row, opts.Lookup, opts.Defaults)
			} else {
				var variant layout.Variant
				record, variant, outcome = ParsePositional(row, opts.Defaults)
				if outcome == Accepted && variant == layout.Keyword {
					report.RowsKeywordFallback++
				}
			}

			switch outcome {
			case Short:
				report.RowsShort++
				continue
			case Invalid:
				report.RowsInvalid++
				continue
			case NoUpgrade:
				report.RowsNoUpgrade++
				continue
			case NoData:
				report.RowsNoData++
				continue
			}

			if record.UsedRound1 {
				report.RowsRound1Fallback++
			} else {
				report.RowsRound2++
			}
			records = append(records, record)
			found++
		}

		report.TablesProcessed++
		log.Printf("📊 Table %s#%d: %d allotments from %d rows", table.Source, table.Index, found, len(rows))
	}

	report.Entries = len(records)
	log.Printf("✅ Round 2 (%s): %d entries, %d from round 2, %d from round 1 fallback", opts.Strategy, report.Entries, report.RowsRound2, report.RowsRound1Fallback)
	return records, report
}

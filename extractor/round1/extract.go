// Package round1 reads the single-round allotment bulletin.
package round1

import (
	"log"

	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/layout"
)

// Extract walks every table wide enough to be a round-1 listing and returns the
// allotments in input order. Dropped rows are counted in the report.
func Extract(tables []common.Table) ([]common.AllotmentRecord, common.Report) {
	records := []common.AllotmentRecord{}
	report := common.Report{TablesFound: len(tables)}

	for _, table := range tables {
		if len(table.Rows) == 0 || table.Columns() < layout.Round1MinColumns {
			log.Printf("⊘ Table %s#%d: %d columns, skipping", table.Source, table.Index, table.Columns())
			report.TablesSkipped++
			continue
		}

		rows := table.Rows
		if IsHeader(rows[0]) {
			rows = rows[1:]
		}

		found := 0
		for _, row := range rows {
			report.RowsProcessed++

			record, short, ok := ParseRow(row)
			switch {
			case short:
				report.RowsShort++
				continue
			case !ok:
				report.RowsInvalid++
				continue
			}

			records = append(records, record)
			found++
		}

		report.TablesProcessed++
		log.Printf("📊 Table %s#%d: %d allotments from %d rows", table.Source, table.Index, found, len(rows))
	}

	report.Entries = len(records)
	return records, report
}

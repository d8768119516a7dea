package view

import (
	"fmt"

	"github.com/rshade/roster/internal/roster"
)

// sequentialRecords returns n records with IDs 1..n. Every seventh record is a
// software engineer, the rest alternate between the two support titles.
func sequentialRecords(n int) []roster.Record {
	records := make([]roster.Record, 0, n)
	for i := 1; i <= n; i++ {
		title := roster.JobTitleCustomerSupport
		switch {
		case i%7 == 0:
			title = roster.JobTitleSoftwareEngineer
		case i%2 == 0:
			title = roster.JobTitleITSupport
		}
		records = append(records, roster.Record{
			ID:       i,
			Name:     fmt.Sprintf("Employee %02d", i),
			JobTitle: title,
			HireDate: roster.HireDate(fmt.Sprintf("2020-01-%02d", (i%28)+1)),
		})
	}
	return records
}

func ids(records []roster.Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func reversed(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

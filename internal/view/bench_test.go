package view

import (
	"testing"

	"github.com/rshade/roster/internal/roster"
)

// BenchmarkControllerSetSource measures a full recompute (sort, filter and
// page) for growing rosters.
func BenchmarkControllerSetSource(b *testing.B) {
	benchmarkCases := []struct {
		name  string
		count int
		key   SortKey
	}{
		{"100_by_name", 100, SortNameAsc},
		{"1000_by_name", 1000, SortNameAsc},
		{"10000_by_name", 10000, SortNameAsc},
		{"10000_by_hire_date", 10000, SortHireDateDesc},
		{"10000_by_job_title", 10000, SortJobTitle},
	}

	for _, bc := range benchmarkCases {
		b.Run(bc.name, func(b *testing.B) {
			records := sequentialRecords(bc.count)
			ctrl := NewController(WithPageSize(DefaultPageSize), WithSortKey(bc.key))
			if bc.key == SortJobTitle {
				ctrl.SetFilterValue(roster.JobTitleSoftwareEngineer)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				ctrl.SetSource(records)
			}
		})
	}
}

// BenchmarkPaginate measures slicing one page out of a large roster.
func BenchmarkPaginate(b *testing.B) {
	records := sequentialRecords(10000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = Paginate(records, DefaultPageSize, (i%TotalPages(len(records), DefaultPageSize))+1)
	}
}

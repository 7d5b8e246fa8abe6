// SPDX-License-Identifier: MIT
package scan_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/scanstat/permute"
	"github.com/katalvlaran/scanstat/scan"
)

func benchmarkScan(b *testing.B, model permute.NullModel, workers int) {
	in := randomInput(1, 12, 40)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := scan.Scan(context.Background(), in,
			scan.WithNumMCSim(99),
			scan.WithSeed(uint64(i)),
			scan.WithWorkers(workers),
			scan.WithNullModel(model),
		); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScan_RowUniform_1(b *testing.B)  { benchmarkScan(b, permute.RowUniform, 1) }
func BenchmarkScan_RowUniform_4(b *testing.B)  { benchmarkScan(b, permute.RowUniform, 4) }
func BenchmarkScan_RowBaseline_4(b *testing.B) { benchmarkScan(b, permute.RowBaselineWeighted, 4) }
func BenchmarkScan_SpaceTime_4(b *testing.B)   { benchmarkScan(b, permute.SpaceTime, 4) }

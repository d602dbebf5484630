package ingest

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/vanshpreet5618/Helios/schema"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic sales parameters.
const (
	DefaultSalesDays = 1095 // Three years of daily rows
	DefaultSalesSeed = 42

	baseSalesMean   = 50000.0
	baseSalesStdDev = 15000.0
	weekdayFactor   = 1.1
	weekendFactor   = 0.7
	holidayFactor   = 1.2 // November and December
	minSales        = 10000.0
	minUnits        = 100
)

// SalesOptions configures the synthetic sales generator.
type SalesOptions struct {
	End  time.Time // Last generated date, time of day is ignored
	Days int
	Seed uint64
}

// GenerateSales draws a daily sales series ending at opts.End. The same seed
// always yields the same amounts.
func GenerateSales(opts SalesOptions) ([]schema.SalesRecord, error) {
	if opts.Days <= 0 {
		return nil, errors.New("days must be positive")
	}
	end := time.Date(opts.End.Year(), opts.End.Month(), opts.End.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(opts.Days - 1))

	base := distuv.Normal{
		Mu:    baseSalesMean,
		Sigma: baseSalesStdDev,
		Src:   rand.NewPCG(opts.Seed, opts.Seed),
	}

	records := make([]schema.SalesRecord, 0, opts.Days)
	for i := range opts.Days {
		date := start.AddDate(0, 0, i)
		daily := base.Rand() * dayFactor(date) * monthFactor(date)
		records = append(records, schema.SalesRecord{
			Date:        date,
			SalesAmount: math.Max(daily, minSales),
			UnitsSold:   int(math.Max(daily/100, minUnits)),
		})
	}
	return records, nil
}

func dayFactor(d time.Time) float64 {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return weekendFactor
	default:
		return weekdayFactor
	}
}

func monthFactor(d time.Time) float64 {
	if d.Month() == time.November || d.Month() == time.December {
		return holidayFactor
	}
	return 1
}

package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vanshpreet5618/Helios/schema"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const day = 24 * time.Hour

// Seasonal periods in days.
const (
	yearlyPeriod = 365.25
	weeklyPeriod = 7.0
)

// noiseVariancePrior converts prior scales into ridge penalties on the
// max-abs scaled series.
const noiseVariancePrior = 0.01

// unpenalized is the ridge weight applied to the slope. The intercept is
// fitted exactly by centering and carries no weight.
const unpenalized = 1e-6

// ForecastOptions tunes the additive forecast model.
type ForecastOptions struct {
	Horizon               int     // Days forecast past the last observation
	YearlyOrder           int     // Fourier order of the yearly term, 0 disables it
	WeeklyOrder           int     // Fourier order of the weekly term, 0 disables it
	NumChangepoints       int     // Potential trend changepoints
	ChangepointRange      float64 // Share of history eligible for changepoints
	ChangepointPriorScale float64
	SeasonalityPriorScale float64
	IntervalWidth         float64 // Coverage of the uncertainty interval
}

// DefaultForecastOptions returns the options used by the train command.
func DefaultForecastOptions() ForecastOptions {
	return ForecastOptions{
		Horizon:               90,
		YearlyOrder:           10,
		WeeklyOrder:           3,
		NumChangepoints:       25,
		ChangepointRange:      0.8,
		ChangepointPriorScale: 0.05,
		SeasonalityPriorScale: 10,
		IntervalWidth:         0.8,
	}
}

// ForecastModel is a fitted trend plus seasonality decomposition.
type ForecastModel struct {
	opts        ForecastOptions
	start       time.Time   // First observed date
	last        time.Time   // Last observed date
	span        float64     // Days between start and last
	scale       float64     // Max absolute value of the series
	history     []time.Time // Distinct observed dates
	changepoint []float64   // Changepoint locations on the normalized time axis
	beta        []float64   // Coefficients in design-matrix column order
	sigma       float64     // In-sample residual standard deviation, scaled
	drift       float64     // Mean absolute changepoint delta, scaled
	z           float64     // Two-sided normal quantile for IntervalWidth
}

// dateOf drops the time of day while keeping the calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// prepareSeries validates points and collapses duplicate dates, last write wins.
func prepareSeries(points []schema.TimeSeriesPoint) ([]time.Time, []float64, error) {
	if len(points) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInsufficientHistory, len(points))
	}
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, nil, fmt.Errorf("%w: non-finite value %v at %s", ErrInvalidSeries, p.Value, p.Timestamp.Format(time.DateOnly))
		}
		byDate[dateOf(p.Timestamp)] = p.Value
	}
	if len(byDate) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 distinct dates, got %d", ErrInsufficientHistory, len(byDate))
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	values := make([]float64, len(dates))
	for i, d := range dates {
		values[i] = byDate[d]
	}
	return dates, values, nil
}

// FitForecast fits the additive model to a daily series.
func FitForecast(points []schema.TimeSeriesPoint, opts ForecastOptions) (*ForecastModel, error) {
	dates, values, err := prepareSeries(points)
	if err != nil {
		return nil, err
	}

	m := &ForecastModel{
		opts:    opts,
		start:   dates[0],
		last:    dates[len(dates)-1],
		history: dates,
	}
	m.span = m.last.Sub(m.start).Hours() / 24
	m.scale = math.Max(math.Abs(floats.Max(values)), math.Abs(floats.Min(values)))
	if m.scale == 0 {
		m.scale = 1
	}

	n := len(dates)
	ts := make([]float64, n)
	y := make([]float64, n)
	for i, d := range dates {
		ts[i] = m.normalize(d)
		y[i] = values[i] / m.scale
	}
	m.changepoint = placeChangepoints(ts, opts.NumChangepoints, opts.ChangepointRange)

	p := m.width()
	x := mat.NewDense(n, p, nil)
	for i, d := range dates {
		x.SetRow(i, m.features(d))
	}

	beta, err := fitCentered(x, y, m.penalties())
	if err != nil {
		return nil, err
	}
	m.beta = beta

	fitted := make([]float64, n)
	for i := range n {
		fitted[i] = floats.Dot(x.RawRowView(i), beta)
	}
	residuals := make([]float64, n)
	floats.SubTo(residuals, y, fitted)
	m.sigma = math.Sqrt(floats.Dot(residuals, residuals) / float64(n))

	if k := len(m.changepoint); k > 0 {
		deltas := make([]float64, k)
		for j := range k {
			deltas[j] = math.Abs(beta[2+j])
		}
		m.drift = stat.Mean(deltas, nil)
	}

	m.z = distuv.UnitNormal.Quantile(0.5 + opts.IntervalWidth/2)
	return m, nil
}

// placeChangepoints spreads candidates evenly over the first share of history.
func placeChangepoints(ts []float64, count int, share float64) []float64 {
	histSize := int(math.Floor(float64(len(ts)) * share))
	if count+1 > histSize {
		count = histSize - 1
	}
	if count <= 0 {
		return nil
	}
	cps := make([]float64, 0, count)
	step := float64(histSize-1) / float64(count)
	for j := 1; j <= count; j++ {
		idx := int(math.Round(step * float64(j)))
		cps = append(cps, ts[idx])
	}
	return cps
}

// normalize maps a date onto [0, 1] over the observed history.
func (m *ForecastModel) normalize(d time.Time) float64 {
	return d.Sub(m.start).Hours() / 24 / m.span
}

// width is the number of design-matrix columns.
func (m *ForecastModel) width() int {
	return 2 + len(m.changepoint) + 2*m.opts.YearlyOrder + 2*m.opts.WeeklyOrder
}

// features returns one design-matrix row: intercept, slope, changepoint
// hinges, yearly then weekly sine/cosine pairs.
func (m *ForecastModel) features(d time.Time) []float64 {
	t := m.normalize(d)
	row := make([]float64, 0, m.width())
	row = append(row, 1, t)
	for _, s := range m.changepoint {
		row = append(row, math.Max(0, t-s))
	}
	epochDays := float64(d.Unix()) / 86400
	row = appendFourier(row, epochDays, yearlyPeriod, m.opts.YearlyOrder)
	row = appendFourier(row, epochDays, weeklyPeriod, m.opts.WeeklyOrder)
	return row
}

func appendFourier(row []float64, days, period float64, order int) []float64 {
	for k := 1; k <= order; k++ {
		arg := 2 * math.Pi * float64(k) * days / period
		row = append(row, math.Sin(arg), math.Cos(arg))
	}
	return row
}

// penalties returns the ridge weight of every column after the intercept.
func (m *ForecastModel) penalties() []float64 {
	pen := make([]float64, 0, m.width()-1)
	pen = append(pen, unpenalized)
	cp := noiseVariancePrior / (m.opts.ChangepointPriorScale * m.opts.ChangepointPriorScale)
	for range m.changepoint {
		pen = append(pen, cp)
	}
	season := noiseVariancePrior / (m.opts.SeasonalityPriorScale * m.opts.SeasonalityPriorScale)
	for range 2 * (m.opts.YearlyOrder + m.opts.WeeklyOrder) {
		pen = append(pen, season)
	}
	return pen
}

// fitCentered solves the ridge problem on mean-centered columns so the
// intercept (column 0 of x) is never shrunk. A constant series therefore
// yields zero trend and seasonal coefficients.
func fitCentered(x *mat.Dense, y []float64, pen []float64) ([]float64, error) {
	n, p := x.Dims()
	yMean := stat.Mean(y, nil)
	yc := make([]float64, n)
	copy(yc, y)
	floats.AddConst(-yMean, yc)

	means := make([]float64, p-1)
	xc := mat.NewDense(n, p-1, nil)
	for j := 1; j < p; j++ {
		col := mat.Col(nil, j, x)
		means[j-1] = stat.Mean(col, nil)
		floats.AddConst(-means[j-1], col)
		xc.SetCol(j-1, col)
	}

	rest, err := ridgeSolve(xc, yc, pen)
	if err != nil {
		return nil, err
	}
	beta := make([]float64, 0, p)
	beta = append(beta, yMean-floats.Dot(means, rest))
	return append(beta, rest...), nil
}

// ridgeSolve solves (XᵀX + diag(pen)) β = Xᵀy by Cholesky factorization.
func ridgeSolve(x *mat.Dense, y []float64, pen []float64) ([]float64, error) {
	_, p := x.Dims()
	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())
	for j := range p {
		xtx.SetSym(j, j, xtx.At(j, j)+pen[j])
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), mat.NewVecDense(len(y), y))

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, errors.New("forecast design matrix is not positive definite")
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("failed to solve forecast coefficients: %w", err)
	}

	out := make([]float64, p)
	for j := range p {
		out[j] = beta.AtVec(j)
		if math.IsNaN(out[j]) || math.IsInf(out[j], 0) {
			return nil, errors.New("forecast coefficients are not finite")
		}
	}
	return out, nil
}

// Predict evaluates the model at the given dates.
func (m *ForecastModel) Predict(dates []time.Time) []schema.ForecastRow {
	rows := make([]schema.ForecastRow, len(dates))
	for i, raw := range dates {
		d := dateOf(raw)
		yhat := floats.Dot(m.features(d), m.beta)

		variance := m.sigma * m.sigma
		if d.After(m.last) {
			ahead := d.Sub(m.last).Hours() / 24 / m.span
			variance += (m.drift * ahead) * (m.drift * ahead)
		}
		half := math.Abs(m.z) * math.Sqrt(variance)

		rows[i] = schema.ForecastRow{
			Timestamp:     d,
			PointEstimate: yhat * m.scale,
			LowerBound:    (yhat - half) * m.scale,
			UpperBound:    (yhat + half) * m.scale,
		}
	}
	return rows
}

// FutureDates returns the observed dates followed by the daily horizon.
func (m *ForecastModel) FutureDates() []time.Time {
	dates := make([]time.Time, 0, len(m.history)+m.opts.Horizon)
	dates = append(dates, m.history...)
	for h := 1; h <= m.opts.Horizon; h++ {
		dates = append(dates, m.last.Add(time.Duration(h)*day))
	}
	return dates
}

// Forecast fits the series and returns history plus the forecast horizon.
func Forecast(points []schema.TimeSeriesPoint, opts ForecastOptions) ([]schema.ForecastRow, error) {
	m, err := FitForecast(points, opts)
	if err != nil {
		return nil, err
	}
	return m.Predict(m.FutureDates()), nil
}

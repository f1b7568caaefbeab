// Package trend extrapolates visitor counts with an ordinary least squares line
// fitted against the index of each observation.
package trend

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"touristplaces/pkg/dataset"
	"touristplaces/pkg/types"
)

const (
	// DefaultHorizon is the number of future periods forecast when none is given.
	DefaultHorizon = 6
	MaxHorizon     = 60
)

var (
	ErrInsufficientData = errors.New("insufficient data: at least two observations are required")
	ErrHorizonTooLong   = fmt.Errorf("horizon cannot exceed %d periods", MaxHorizon)
)

// Model is a fitted line y = Intercept + Slope*x.
type Model struct {
	Intercept float64
	Slope     float64
	// Observations is the number of points the model was fitted on.
	Observations int
}

// Fit regresses history on the positions 0, 1, ..., len(history)-1.
func Fit(history []float64) (Model, error) {
	if len(history) < 2 {
		return Model{}, ErrInsufficientData
	}
	xs := make([]float64, len(history))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, history, nil, false)
	return Model{Intercept: alpha, Slope: beta, Observations: len(history)}, nil
}

func (m Model) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// Forecast predicts horizon values at positions from, from+1, ...
// A horizon below one yields no values.
func (m Model) Forecast(from, horizon int) []float64 {
	if horizon < 1 {
		return []float64{}
	}
	out := make([]float64, horizon)
	for i := range out {
		out[i] = m.Predict(float64(from + i))
	}
	return out
}

// Forecast fits history and returns the next horizon values. A horizon below
// one falls back to DefaultHorizon; above MaxHorizon it is rejected.
func Forecast(history []float64, horizon int) ([]float64, error) {
	if horizon > MaxHorizon {
		return nil, ErrHorizonTooLong
	}
	m, err := Fit(history)
	if err != nil {
		return nil, err
	}
	if horizon < 1 {
		horizon = DefaultHorizon
	}
	return m.Forecast(len(history), horizon), nil
}

// ForCity forecasts the visitor column of city.
func ForCity(ds *dataset.Dataset, city string, horizon int) (types.Forecast, error) {
	if horizon > MaxHorizon {
		return types.Forecast{}, ErrHorizonTooLong
	}
	history, err := ds.VisitorHistory(city)
	if err != nil {
		return types.Forecast{}, err
	}
	m, err := Fit(history)
	if err != nil {
		return types.Forecast{}, err
	}
	if horizon < 1 {
		horizon = DefaultHorizon
	}
	return types.Forecast{
		City:        city,
		History:     history,
		Predictions: m.Forecast(len(history), horizon),
		Intercept:   m.Intercept,
		Slope:       m.Slope,
	}, nil
}

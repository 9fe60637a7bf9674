package db

import (
	"context"

	"github.com/dontcallmebro/BQL-APP/data"
)

// SaveCalibrations upserts a batch of results in one transaction.
func (store *SQLStore) SaveCalibrations(ctx context.Context, args []InsertCalibrationParams) ([]Calibration, error) {
	result := make([]Calibration, 0, len(args))
	err := store.execTx(ctx, func(q *Queries) error {
		for _, arg := range args {
			c, err := q.InsertCalibration(ctx, arg)
			if err != nil {
				return err
			}
			result = append(result, c)
		}
		return nil
	})
	return result, err
}

// LatestCalibrations returns every tenor calibrated on the most recent date.
func (store *SQLStore) LatestCalibrations(ctx context.Context) ([]Calibration, error) {
	var result []Calibration
	err := store.execTx(ctx, func(q *Queries) error {
		date, err := q.GetLatestCalibrationDate(ctx)
		if err != nil {
			return err
		}
		result, err = q.ListCalibrationsByDate(ctx, date)
		return err
	})
	return result, err
}

// CalibrationParams maps a pipeline result onto a row of the calibrations table.
func CalibrationParams(res data.CalibrationResult) InsertCalibrationParams {
	return InsertCalibrationParams{
		Date:         res.Date,
		Tenor:        res.Tenor,
		Forward:      res.Forward,
		StrikePut10:  res.Strikes[data.Put10],
		StrikePut25:  res.Strikes[data.Put25],
		StrikeAtm:    res.Strikes[data.ATM],
		StrikeCall25: res.Strikes[data.Call25],
		StrikeCall10: res.Strikes[data.Call10],
		Rho:          res.Rho,
		Nu:           res.Nu,
		Alpha:        res.Alpha,
		Beta:         res.Beta,
		T:            res.T,
		Rmse:         res.RMSE,
	}
}

// Result converts a stored row back into a pipeline result.
func (c Calibration) Result() data.CalibrationResult {
	return data.CalibrationResult{
		Date:    c.Date,
		Tenor:   c.Tenor,
		Forward: c.Forward,
		Strikes: [5]float64{c.StrikePut10, c.StrikePut25, c.StrikeAtm, c.StrikeCall25, c.StrikeCall10},
		Rho:     c.Rho,
		Nu:      c.Nu,
		Alpha:   c.Alpha,
		Beta:    c.Beta,
		T:       c.T,
		RMSE:    c.Rmse,
	}
}

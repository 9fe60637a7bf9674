package api

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dontcallmebro/BQL-APP/data"
	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
	"github.com/dontcallmebro/BQL-APP/utils"
)

const maxRows = 5000

type quoteRow struct {
	Date    string   `json:"date" binding:"required"`
	Tenor   string   `json:"tenor" binding:"required"`
	Forward *float64 `json:"forward"`
	ATM     *float64 `json:"atm"`
	Call25  *float64 `json:"call25"`
	Put25   *float64 `json:"put25"`
	Call10  *float64 `json:"call10"`
	Put10   *float64 `json:"put10"`
}

type calibrateRequest struct {
	Beta    *float64   `json:"beta"`
	Persist bool       `json:"persist"`
	Rows    []quoteRow `json:"rows" binding:"required,min=1,dive"`
}

type resultResponse struct {
	data.CalibrationResult
	Smile []data.SmilePoint `json:"smile"`
}

type failureResponse struct {
	Date   string `json:"date"`
	Tenor  string `json:"tenor"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

func (server *Server) calibrate(c *gin.Context) {
	var req calibrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if len(req.Rows) > maxRows {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(fmt.Errorf("at most %d rows per request", maxRows)))
		return
	}
	beta := server.beta
	if req.Beta != nil {
		beta = *req.Beta
	}
	if beta < 0 || beta > 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(fmt.Errorf("beta must lie in [0, 1], got %v", beta)))
		return
	}

	rows := make([]data.Row, len(req.Rows))
	for i, q := range req.Rows {
		date, err := time.Parse(utils.Layout, q.Date)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(fmt.Errorf("row %d: %w", i, err)))
			return
		}
		rows[i] = data.Row{
			Date:    date,
			Tenor:   q.Tenor,
			Forward: value(q.Forward),
			ATM:     value(q.ATM),
			Call25:  value(q.Call25),
			Put25:   value(q.Put25),
			Call10:  value(q.Call10),
			Put10:   value(q.Put10),
		}
	}

	pipeline := data.NewPipeline(beta, server.log)
	report, _, err := pipeline.Run(c.Request.Context(), rows, data.NewWarmStart())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse(err))
		return
	}

	if req.Persist && len(report.Results) > 0 {
		args := make([]db.InsertCalibrationParams, len(report.Results))
		for i, res := range report.Results {
			args[i] = db.CalibrationParams(res)
		}
		if _, err := server.store.SaveCalibrations(c, args); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
			return
		}
	}

	results := make([]resultResponse, len(report.Results))
	for i, res := range report.Results {
		results[i] = resultResponse{CalibrationResult: res, Smile: res.Smile()}
	}
	failures := make([]failureResponse, len(report.Failures))
	for i, f := range report.Failures {
		failures[i] = failureResponse{
			Date:   f.Date.Format(utils.Layout),
			Tenor:  f.Tenor,
			Reason: data.Reason(f.Err),
			Error:  f.Err.Error(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":  results,
		"failures": failures,
		"counts":   report.Count(),
	})
}

func (server *Server) listCalibrations(c *gin.Context) {
	var (
		stored []db.Calibration
		err    error
	)
	if tenor := c.Query("tenor"); tenor != "" {
		stored, err = server.store.ListCalibrations(c, data.NormalizeTenor(tenor))
	} else {
		stored, err = server.store.LatestCalibrations(c)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, errorResponse(err))
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	results := make([]data.CalibrationResult, len(stored))
	for i, s := range stored {
		results[i] = s.Result()
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// null and absent quotes are missing
func value(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dontcallmebro/BQL-APP/data"
	"github.com/dontcallmebro/BQL-APP/sabr"
)

type smileRequest struct {
	Forward float64   `json:"forward" binding:"required,gt=0"`
	Tenor   string    `json:"tenor"`
	T       float64   `json:"t" binding:"gte=0"`
	Alpha   float64   `json:"alpha" binding:"required,gt=0"`
	Beta    float64   `json:"beta" binding:"gte=0,lte=1"`
	Rho     float64   `json:"rho" binding:"gt=-1,lt=1"`
	Nu      float64   `json:"nu" binding:"gte=0"`
	Strikes []float64 `json:"strikes" binding:"required,min=1,dive,gt=0"`
}

// smile evaluates a SABR smile at the requested strikes. Rho and nu are on their natural scale.
func (server *Server) smile(c *gin.Context) {
	var req smileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	t := req.T
	if req.Tenor != "" {
		years, ok := data.TenorYears(req.Tenor)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(fmt.Errorf("%w: %q", data.ErrUnknownTenor, req.Tenor)))
			return
		}
		t = years
	}
	if !(t > 0) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(errors.New("either tenor or a positive t is required")))
		return
	}

	p := sabr.Params{Alpha: req.Alpha, Beta: req.Beta, Rho: req.Rho, Nu: req.Nu}
	vols := p.Smile(req.Forward, t, req.Strikes)
	points := make([]data.SmilePoint, len(vols))
	for i, v := range vols {
		points[i] = data.SmilePoint{Strike: req.Strikes[i], Vol: v}
	}
	c.JSON(http.StatusOK, gin.H{"t": t, "smile": points})
}

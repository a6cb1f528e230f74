package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/breezko/feiertage-api/internal/feiertage"
	"github.com/breezko/feiertage-api/internal/ical"
)

const (
	minYear = 1970
	maxYear = 2100

	contentTypeCalendar = "text/calendar; charset=utf-8"
)

// params is the validated query parameter set shared by both endpoints.
type params struct {
	Year     int
	Land     string
	NurDaten *int
}

// handleFeiertage serves GET /: JSON passthrough by default, iCalendar
// when format=ical is requested.
func (s *Server) handleFeiertage(c *gin.Context) {
	p, ok := s.bindParams(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "ical" {
		unprocessable(c, "Invalid format, must be json or ical.")
		return
	}

	holidays, err := s.client.Fetch(c.Request.Context(), p.Year, p.Land, p.NurDaten)
	if err != nil {
		s.writeUpstreamError(c, err)
		return
	}

	if format == "ical" {
		s.writeCalendar(c, holidays, p.Land)
		return
	}

	// Passthrough: the upstream body goes out untouched
	c.Data(http.StatusOK, "application/json", holidays.Raw)
}

// handleICal serves GET /ical: same as / but always iCalendar.
func (s *Server) handleICal(c *gin.Context) {
	p, ok := s.bindParams(c)
	if !ok {
		return
	}

	holidays, err := s.client.Fetch(c.Request.Context(), p.Year, p.Land, p.NurDaten)
	if err != nil {
		s.writeUpstreamError(c, err)
		return
	}

	s.writeCalendar(c, holidays, p.Land)
}

// handleHealth serves GET /health for the keepalive task and external
// monitors. It never touches the upstream.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindParams validates jahr, nur_land and nur_daten. Validation fails
// closed with 422 before any upstream call.
func (s *Server) bindParams(c *gin.Context) (params, bool) {
	var p params

	yearStr := c.Query("jahr")
	if yearStr == "" {
		unprocessable(c, "Query parameter jahr is required.")
		return p, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < minYear || year > maxYear {
		unprocessable(c, "jahr must be an integer between 1970 and 2100.")
		return p, false
	}
	p.Year = year

	if land := c.Query("nur_land"); land != "" {
		if !feiertage.ValidState(land) {
			unprocessable(c, "Invalid Bundesland code.")
			return p, false
		}
		p.Land = land
	}

	if nd := c.Query("nur_daten"); nd != "" {
		val, err := strconv.Atoi(nd)
		if err != nil || (val != 0 && val != 1) {
			unprocessable(c, "nur_daten must be 0 or 1.")
			return p, false
		}
		p.NurDaten = &val
	}

	return p, true
}

func (s *Server) writeCalendar(c *gin.Context, holidays *feiertage.HolidaySet, land string) {
	scope := land
	if scope == "" {
		scope = feiertage.ScopeNational
	}

	doc := ical.Render(holidays.Entries, scope, s.now())
	c.Data(http.StatusOK, contentTypeCalendar, []byte(doc))
}

// writeUpstreamError maps client errors to HTTP responses: transport and
// shape failures become 502, a non-200 upstream status is propagated
// verbatim.
func (s *Server) writeUpstreamError(c *gin.Context, err error) {
	var statusErr *feiertage.StatusError
	switch {
	case errors.As(err, &statusErr):
		c.JSON(statusErr.Code, gin.H{"detail": "Upstream API returned an error."})

	case errors.Is(err, feiertage.ErrMalformed):
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})

	default:
		// ErrUnreachable and anything unexpected
		s.logger.Warn("Upstream call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	}
}

func unprocessable(c *gin.Context, detail string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
}

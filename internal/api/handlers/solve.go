package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rangecard/backend/internal/report"
	"github.com/rangecard/backend/internal/solutions"
)

// solutionStatusHeader carries ok_physics / no_physics_solution on non-JSON responses.
const solutionStatusHeader = "X-Solution-Status"

func bindRequest(c *gin.Context) (solutions.Request, bool) {
	var req solutions.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return req, false
	}
	return req, true
}

// Solve answers a single firing problem
func Solve(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRequest(c)
		if !ok {
			return
		}
		res, err := svc.Solve(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// SolveBatch answers a list of firing problems in request order
func SolveBatch(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Requests []solutions.Request `json:"requests"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		items, err := svc.SolveBatch(c.Request.Context(), body.Requests)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": items})
	}
}

// SolveCSV returns the sampled trajectory as x,y,time CSV.
// A target out of reach yields 422 with the JSON result.
func SolveCSV(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRequest(c)
		if !ok {
			return
		}
		req.OmitTrajectory = false
		res, err := svc.Solve(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		fact := res.Fact()
		c.Header(solutionStatusHeader, fact.Status())
		if !res.Solution.Ok() {
			c.JSON(http.StatusUnprocessableEntity, res)
			return
		}

		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, res.Trajectory); err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}

// SolvePlot renders the sampled trajectory as a PNG.
func SolvePlot(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRequest(c)
		if !ok {
			return
		}
		req.OmitTrajectory = false
		res, err := svc.Solve(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		fact := res.Fact()
		c.Header(solutionStatusHeader, fact.Status())
		if !res.Solution.Ok() {
			c.JSON(http.StatusUnprocessableEntity, res)
			return
		}

		var buf bytes.Buffer
		if err := report.WritePlot(&buf, res.Trajectory, "png"); err != nil {
			log.Printf("[PLOT] render failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render plot"})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// SolveFacts returns the Prolog fact record for a request. Unreachable
// targets still produce a record, with angle_deg(none).
func SolveFacts(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRequest(c)
		if !ok {
			return
		}
		req.OmitTrajectory = true
		res, err := svc.Solve(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		fact := res.Fact()
		var buf bytes.Buffer
		if err := report.WriteFacts(&buf, fact); err != nil {
			respondError(c, err)
			return
		}
		c.Header(solutionStatusHeader, fact.Status())
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	}
}

// ListSolutions returns the most recent solved requests
func ListSolutions(history solutions.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		if history == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not enabled"})
			return
		}
		limit := queryInt(c, "limit", 25, 200)
		records, err := history.Recent(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"solutions": records, "limit": limit})
	}
}

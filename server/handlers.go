package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/search"
)

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Results []search.DocumentResult `json:"results"`
}

// IngestRequest is the body of POST /ingest.
type IngestRequest struct {
	Records []map[string]any `json:"records"`
}

// IngestResponse reports one ingestion run.
type IngestResponse struct {
	RecordsAccepted int `json:"records_accepted"`
	RecordsSkipped  int `json:"records_skipped"`
	ChunksIndexed   int `json:"chunks_indexed"`
	ChunksSkipped   int `json:"chunks_skipped"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	results, err := s.searcher.Search(c.Request().Context(), req.Query)
	searchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		searchRequests.WithLabelValues("error").Inc()
		return err
	}
	searchRequests.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, SearchResponse{Results: results})
}

func (s *Server) handleIngest(c echo.Context) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	records := make([]core.RawRecord, len(req.Records))
	for i, r := range req.Records {
		records[i] = core.RawRecord(r)
	}

	report, err := s.pipeline.IngestRecords(c.Request().Context(), records)
	if err != nil {
		// Partial outcomes still return the report; the client decides
		// whether to retry the run.
		s.logger.Warn("ingestion completed with failures",
			"indexed", report.ChunksIndexed, "skipped", report.ChunksSkipped, "err", err)
	}

	ingestRecords.Add(float64(report.RecordsAccepted))
	ingestChunks.Add(float64(report.ChunksIndexed))

	status := http.StatusOK
	if err != nil {
		status = http.StatusAccepted
	}
	return c.JSON(status, IngestResponse{
		RecordsAccepted: report.RecordsAccepted,
		RecordsSkipped:  report.RecordsSkipped,
		ChunksIndexed:   report.ChunksIndexed,
		ChunksSkipped:   report.ChunksSkipped,
	})
}

func (s *Server) handleHealthz(c echo.Context) error {
	if err := s.store.EnsureCollection(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "index unavailable: "+err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"dimension": strconv.Itoa(s.store.Dimension()),
	})
}

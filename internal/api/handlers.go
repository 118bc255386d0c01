package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/david/rfp-finder/internal/auth"
	"github.com/david/rfp-finder/internal/models"
	"github.com/david/rfp-finder/internal/rfp"
	"github.com/david/rfp-finder/internal/samgov"
	"github.com/david/rfp-finder/internal/store"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// listResponse is the paginated-less listing envelope; the filter pipeline
// returns the full visible set, so total always equals len(rfps).
type listResponse struct {
	Rfps  []models.Rfp `json:"rfps"`
	Total int          `json:"total"`
}

func (s *Server) handleListRfps(c echo.Context) error {
	spec := rfp.FilterSpec{
		Search:            c.QueryParam("search"),
		Technologies:      multiParam(c, "technologies"),
		OrganizationTypes: multiParam(c, "organizationTypes"),
	}

	budget, err := rfp.ParseBudgetRange(c.QueryParam("budgetRange"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	spec.Budget = budget

	if raw := strings.TrimSpace(c.QueryParam("deadlineFilter")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid deadline filter %q", raw)})
		}
		spec.DeadlineWithinDays = &days
	}

	rfps, err := s.Rfps.ListRfps(c.Request().Context(), spec)
	if err != nil {
		c.Logger().Errorf("Failed to list RFPs: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	if mode := c.QueryParam("sort"); mode != "" {
		rfp.Resort(rfps, rfp.SortMode(mode))
	}

	if rfps == nil {
		rfps = []models.Rfp{}
	}
	return c.JSON(http.StatusOK, listResponse{Rfps: rfps, Total: len(rfps)})
}

// multiParam collects a repeated query parameter, splitting any CSV values.
func multiParam(c echo.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryParams()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) handleGetRfp(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid RFP ID"})
	}

	record, err := s.Rfps.GetRfp(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) handleTechnologyCounts(c echo.Context) error {
	counts, err := s.Rfps.TechnologyCounts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, counts)
}

func (s *Server) handleLiveSummary(c echo.Context) error {
	summary, err := s.Rfps.LiveSummary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleDownloadDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid RFP ID"})
	}

	record, err := s.Rfps.GetRfp(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	if record.DocumentURL == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No document available for this RFP"})
	}

	info, err := s.Fetcher.InspectDocument(c.Request().Context(), record.DocumentURL)
	if err != nil {
		c.Logger().Errorf("Document inspection failed for %s: %v", record.ID, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Document source unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rfp_id":   record.ID,
		"title":    record.Title,
		"document": info,
	})
}

func (s *Server) handleContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid RFP ID"})
	}

	record, err := s.Rfps.GetRfp(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"rfp_id":       record.ID.String(),
		"organization": record.Organization,
		"email":        record.ContactEmail,
		"website":      record.OrganizationWebsite,
		"subject":      fmt.Sprintf("Proposal inquiry: %s", record.Title),
	})
}

func (s *Server) handleTriggerIngest(c echo.Context) error {
	if s.Ingestor == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Ingest is not configured"})
	}

	summary, err := s.Ingestor.Run(c.Request().Context())
	if err != nil {
		if errors.Is(err, samgov.ErrSourceUnavailable) {
			return c.JSON(http.StatusBadGateway, map[string]interface{}{
				"error":   "SAM.gov unavailable",
				"summary": summary,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Ingestion complete",
		"summary": summary,
	})
}

func (s *Server) handleSeed(c echo.Context) error {
	n, err := store.Seed(c.Request().Context(), s.Store)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Seed complete",
		"count":   n,
	})
}

// Auth handlers

func (s *Server) handleSignup(c echo.Context) error {
	var req auth.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCreds) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

// Protected handlers

func (s *Server) handleSaveRfp(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	rfpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid RFP ID"})
	}

	if err := s.AuthService.SaveRfp(c.Request().Context(), userID, rfpID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save RFP"})
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleUnsaveRfp(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	rfpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid RFP ID"})
	}

	if err := s.AuthService.UnsaveRfp(c.Request().Context(), userID, rfpID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to unsave RFP"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "unsaved"})
}

func (s *Server) handleGetSavedRfps(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	rfps, err := s.AuthService.GetSavedRfps(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch saved RFPs"})
	}
	if rfps == nil {
		rfps = []models.Rfp{}
	}
	return c.JSON(http.StatusOK, rfps)
}

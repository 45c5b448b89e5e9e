package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// ReportHandler serves platform donation reports. Admin only; the role
// middleware guards the route.
type ReportHandler struct {
	Reports *repository.ReportRepo
}

func NewReportHandler(r *repository.ReportRepo) *ReportHandler {
	return &ReportHandler{Reports: r}
}

type charityTotalPart struct {
	CharityID     uint64 `json:"charity_id"`
	CharityName   string `json:"charity_name"`
	DonationCount uint64 `json:"donation_count"`
	TotalCents    uint64 `json:"total_cents"`
}

// Platform returns platform-wide donation totals. An optional
// ?since=YYYY-MM-DD bound restricts the window; omitted means all time.
func (h *ReportHandler) Platform(c echo.Context) error {
	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "since must be YYYY-MM-DD"})
		}
		since = parsed
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Reports.Summary(ctx, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	charities := make([]charityTotalPart, 0, len(s.Charities))
	for _, ct := range s.Charities {
		charities = append(charities, charityTotalPart{
			CharityID:     ct.CharityID,
			CharityName:   ct.CharityName,
			DonationCount: ct.DonationCount,
			TotalCents:    ct.TotalCents,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"donation_count": s.DonationCount,
		"total_cents":    s.TotalCents,
		"donor_count":    s.DonorCount,
		"charities":      charities,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharebite/donation-system/internal/api/metrics"
	"github.com/sharebite/donation-system/internal/core/domain"
	"github.com/sharebite/donation-system/internal/core/ports"
)

// DonationHandler handles HTTP requests for the donation lifecycle.
type DonationHandler struct {
	donations ports.DonationService
	claims    ports.ClaimService
}

func NewDonationHandler(donations ports.DonationService, claims ports.ClaimService) *DonationHandler {
	return &DonationHandler{donations: donations, claims: claims}
}

// Create handles POST /donation. It persists the donation and schedules the
// alert broadcast plus a retention sweep in the background.
//
// @Summary      Create a new donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        body  body      createDonationRequest  true  "Donation details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /donation [post]
func (h *DonationHandler) Create(c echo.Context) error {
	var req createDonationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	if _, err := h.donations.CreateDonation(c.Request().Context(), toCreateInput(req)); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create donation"})
	}

	metrics.DonationsCreatedTotal.WithLabelValues(req.Category).Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Donation created and alerts sent."})
}

// Claim handles POST /claim_donation, the only operation that flips a
// donation's claimed flag.
//
// @Summary      Claim a donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        body  body      claimDonationRequest  true  "Claim details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /claim_donation [post]
func (h *DonationHandler) Claim(c echo.Context) error {
	var req claimDonationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	err := h.claims.ClaimDonation(c.Request().Context(), toClaimInput(req))
	switch {
	case errors.Is(err, domain.ErrDonationNotFound):
		metrics.ClaimsTotal.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusNotFound, errorResponse{Error: "donation not found"})
	case errors.Is(err, domain.ErrDonationAlreadyClaimed):
		metrics.ClaimsTotal.WithLabelValues("already_claimed").Inc()
		return c.JSON(http.StatusConflict, errorResponse{Error: "donation already claimed"})
	case err != nil:
		metrics.ClaimsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to claim donation"})
	}

	metrics.ClaimsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Donation claimed and donor and receiver notified."})
}

// List handles GET /donations. It returns every unclaimed donation with its
// store-assigned id. No pagination, store default order.
//
// @Summary      List unclaimed donations
// @Tags         donations
// @Produce      json
// @Success      200  {array}   donationResponse
// @Failure      500  {object}  errorResponse
// @Router       /donations [get]
func (h *DonationHandler) List(c echo.Context) error {
	donations, err := h.donations.ListUnclaimed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to fetch donations"})
	}
	return c.JSON(http.StatusOK, toDonationListResponse(donations))
}

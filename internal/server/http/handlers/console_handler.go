package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// ConsoleHandler serves the operator review console.
type ConsoleHandler struct {
	facade ConsoleFacade
	logger *slog.Logger
}

// NewConsoleHandler constructs ConsoleHandler.
func NewConsoleHandler(facade ConsoleFacade, logger *slog.Logger) *ConsoleHandler {
	return &ConsoleHandler{facade: facade, logger: logger}
}

// List handles GET /api/admin/intakes.
func (h *ConsoleHandler) List(c *gin.Context) {
	rows, err := h.facade.Intakes(c.Request.Context())
	if err != nil {
		h.consoleError(c, "list intakes failed", err)
		return
	}

	response := make([]dto.IntakeSummary, 0, len(rows))
	for _, row := range rows {
		response = append(response, toIntakeSummary(row))
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/admin/intakes/:id.
func (h *ConsoleHandler) Detail(c *gin.Context) {
	detail, err := h.facade.Intake(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.consoleError(c, "load intake failed", err)
		return
	}
	c.JSON(http.StatusOK, toIntakeDetail(detail))
}

// Edit handles PATCH /api/admin/intakes/:id.
func (h *ConsoleHandler) Edit(c *gin.Context) {
	var req dto.IntakeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "update intake failed", "malformed request body")
		return
	}

	id := c.Param("id")
	intake, err := h.facade.EditIntake(c.Request.Context(), id, model.IntakeUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		LinkedInURL:     req.LinkedInURL,
		JobDescription:  req.JobDescription,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		h.consoleError(c, "update intake failed", err)
		return
	}

	h.logger.Info("intake edited", slog.String("intake", id), slog.String("operator", CurrentUserID(c)))
	c.JSON(http.StatusOK, gin.H{"success": true, "id": intake.ID})
}

// Delete handles DELETE /api/admin/intakes/:id?confirm=true.
func (h *ConsoleHandler) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	id := c.Param("id")
	if err := h.facade.DeleteIntake(c.Request.Context(), id, confirmed); err != nil {
		h.consoleError(c, "delete intake failed", err)
		return
	}

	h.logger.Info("intake removed", slog.String("intake", id), slog.String("operator", CurrentUserID(c)))
	c.Status(http.StatusNoContent)
}

func (h *ConsoleHandler) consoleError(c *gin.Context, action string, err error) {
	var validation *domainErrors.ValidationError
	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: action + ": " + validation.Error(), Field: validation.Field})
	case errors.Is(err, domainErrors.ErrNotFound):
		fail(c, http.StatusNotFound, action, "intake not found")
	default:
		h.logger.Error(action, slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, action, "storage unavailable")
	}
}

func toIntakeSummary(row model.IntakeWithOrder) dto.IntakeSummary {
	return dto.IntakeSummary{
		ID:            row.Intake.ID,
		OrderID:       row.Intake.OrderID,
		FirstName:     row.Intake.FirstName,
		LastName:      row.Intake.LastName,
		Email:         row.Intake.Email,
		CustomerEmail: row.Order.CustomerEmail,
		OfferingName:  row.Order.OfferingName,
		Amount:        row.Order.Amount,
		Currency:      row.Order.Currency,
		OrderStatus:   string(row.Order.Status),
		CreatedAt:     row.Intake.CreatedAt,
	}
}

func toIntakeDetail(detail *usecase.IntakeDetail) dto.IntakeDetailResponse {
	intake := detail.Intake
	return dto.IntakeDetailResponse{
		IntakeSummary:   toIntakeSummary(detail.IntakeWithOrder),
		SubmissionToken: intake.SubmissionToken,
		Phone:           intake.Phone,
		LinkedInURL:     intake.LinkedInURL,
		JobURL:          intake.JobURL,
		JobDescription:  intake.JobDescription,
		AdditionalNotes: intake.AdditionalNotes,
		ResumePath:      intake.ResumePath,
		ResumeURL:       detail.ResumeURL,
	}
}

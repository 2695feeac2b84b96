package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
)

const resumeField = "resume"

// IntakeHandler accepts applicant intake forms.
type IntakeHandler struct {
	facade StorefrontFacade
	logger *slog.Logger
}

// NewIntakeHandler constructs IntakeHandler.
func NewIntakeHandler(facade StorefrontFacade, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{facade: facade, logger: logger}
}

// Submit handles POST /api/intake as multipart form or JSON.
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req dto.IntakeRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "intake submission failed", "malformed request body")
		return
	}
	sub := req.Submission()

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		header, err := c.FormFile(resumeField)
		switch {
		case err == nil:
			file, err := header.Open()
			if err != nil {
				failField(c, http.StatusBadRequest, resumeField, "invalid file: unreadable upload")
				return
			}
			defer file.Close()
			sub.Resume = resumeFrom(header, file)
		case !errors.Is(err, http.ErrMissingFile):
			failField(c, http.StatusBadRequest, resumeField, "invalid file: unreadable upload")
			return
		}
	}

	intake, err := h.facade.SubmitIntake(c.Request.Context(), sub)
	if err != nil {
		if field, message, ok := validationField(err); ok {
			failField(c, http.StatusBadRequest, field, message)
			return
		}
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found", Field: "orderId"})
			return
		}
		h.logger.Error("intake submission failed", slog.String("order", sub.OrderID), slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, "intake submission failed", "please try again in a few minutes")
		return
	}

	c.JSON(http.StatusCreated, dto.IntakeCreatedResponse{Success: true, ID: intake.ID})
}

func resumeFrom(header *multipart.FileHeader, file multipart.File) *model.ResumeFile {
	return &model.ResumeFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
}

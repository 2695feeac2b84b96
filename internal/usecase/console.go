package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/interviewprep/internal/config"
	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
)

// IntakeDetail is a console row with a temporary resume link.
type IntakeDetail struct {
	model.IntakeWithOrder
	ResumeURL string
}

// ConsoleUseCase backs the operator review console.
type ConsoleUseCase struct {
	intakes repository.IntakeRepository
	store   ObjectStore
	ttl     time.Duration
	logger  *slog.Logger
}

// NewConsoleUseCase constructs ConsoleUseCase.
func NewConsoleUseCase(intakes repository.IntakeRepository, store ObjectStore, cfg *config.Config, logger *slog.Logger) *ConsoleUseCase {
	return &ConsoleUseCase{intakes: intakes, store: store, ttl: cfg.SignedURLTTL, logger: logger}
}

// List returns all intakes with their orders, newest first.
func (u *ConsoleUseCase) List(ctx context.Context) ([]model.IntakeWithOrder, error) {
	rows, err := u.intakes.ListWithOrders(ctx)
	if err != nil {
		return nil, domainErrors.Storage("list intakes", err)
	}
	return rows, nil
}

// Detail loads one intake. A resume link that cannot be signed is left empty.
func (u *ConsoleUseCase) Detail(ctx context.Context, id string) (*IntakeDetail, error) {
	if err := checkIntakeID(id); err != nil {
		return nil, err
	}
	row, err := u.intakes.GetByID(ctx, id)
	if err != nil {
		return nil, domainErrors.Storage("load intake", err)
	}

	detail := &IntakeDetail{IntakeWithOrder: *row}
	if path := row.Intake.ResumePath; path != nil && *path != "" {
		signed, err := u.store.SignedURL(ctx, *path, u.ttl)
		if err != nil {
			u.logger.Warn("sign resume url failed", slog.String("intake", id), slog.String("error", err.Error()))
		} else {
			detail.ResumeURL = signed
		}
	}
	return detail, nil
}

// Edit applies non-nil fields of update. Required fields cannot be blanked.
func (u *ConsoleUseCase) Edit(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error) {
	if err := checkIntakeID(id); err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, &domainErrors.ValidationError{Field: "update", Reason: "has no editable fields"}
	}

	required := []struct {
		field string
		value *string
	}{
		{"firstName", update.FirstName},
		{"lastName", update.LastName},
		{"email", update.Email},
		{"linkedin", update.LinkedInURL},
		{"jobDescription", update.JobDescription},
	}
	for _, r := range required {
		if r.value == nil {
			continue
		}
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return nil, domainErrors.Required(r.field)
		}
	}
	for _, optional := range []*string{update.Phone, update.AdditionalNotes} {
		if optional != nil {
			*optional = strings.TrimSpace(*optional)
		}
	}
	if update.Email != nil {
		if err := ValidateEmail("email", *update.Email); err != nil {
			return nil, err
		}
	}

	intake, err := u.intakes.Update(ctx, id, update)
	if err != nil {
		return nil, domainErrors.Storage("update intake", err)
	}
	u.logger.Info("intake updated", slog.String("intake", id))
	return intake, nil
}

// Delete removes an intake once confirmed. The owning order is kept.
func (u *ConsoleUseCase) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return &domainErrors.ValidationError{Field: "confirm", Reason: "must be true to delete"}
	}
	if err := checkIntakeID(id); err != nil {
		return err
	}
	if err := u.intakes.Delete(ctx, id); err != nil {
		return domainErrors.Storage("delete intake", err)
	}
	u.logger.Info("intake deleted", slog.String("intake", id))
	return nil
}

// checkIntakeID reports ids that cannot name a stored intake as not found.
func checkIntakeID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domainErrors.ErrNotFound
	}
	return nil
}

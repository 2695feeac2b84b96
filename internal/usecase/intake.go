package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
)

// IntakeSubmission is the canonical shape of an applicant's intake form.
type IntakeSubmission struct {
	OrderID         string
	SubmissionToken string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	LinkedInURL     string
	JobURL          string
	JobDescription  string
	AdditionalNotes string
	Resume          *model.ResumeFile
}

func (s *IntakeSubmission) trim() {
	for _, f := range []*string{
		&s.OrderID, &s.SubmissionToken, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.LinkedInURL, &s.JobURL, &s.JobDescription, &s.AdditionalNotes,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// Validate checks required fields and the resume, without touching storage.
func (s *IntakeSubmission) Validate() error {
	s.trim()
	if err := firstBlank(
		namedValue{"orderId", s.OrderID},
		namedValue{"firstName", s.FirstName},
		namedValue{"lastName", s.LastName},
		namedValue{"email", s.Email},
		namedValue{"linkedin", s.LinkedInURL},
		namedValue{"jobDescription", s.JobDescription},
	); err != nil {
		return err
	}
	if _, err := uuid.Parse(s.OrderID); err != nil {
		return &domainErrors.ValidationError{Field: "orderId", Reason: "is not a valid order reference"}
	}
	if err := ValidateEmail("email", s.Email); err != nil {
		return err
	}
	if s.Resume != nil {
		if _, _, err := ValidateResume(s.Resume); err != nil {
			return err
		}
	}
	return nil
}

// IntakeUseCase stores intake forms and resumes.
type IntakeUseCase struct {
	orders     repository.OrderRepository
	intakes    repository.IntakeRepository
	store      ObjectStore
	notifier   *NotificationUseCase
	dispatcher TaskDispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewIntakeUseCase constructs IntakeUseCase.
func NewIntakeUseCase(
	orders repository.OrderRepository,
	intakes repository.IntakeRepository,
	store ObjectStore,
	notifier *NotificationUseCase,
	dispatcher TaskDispatcher,
	logger *slog.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{
		orders:     orders,
		intakes:    intakes,
		store:      store,
		notifier:   notifier,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit validates, uploads the resume, records the intake and queues notifications.
// The record insert is the commit point; notification problems are never returned.
func (u *IntakeUseCase) Submit(ctx context.Context, sub IntakeSubmission) (*model.Intake, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if _, err := u.orders.GetByID(ctx, sub.OrderID); err != nil {
		return nil, domainErrors.Storage("load order", err)
	}

	intake := &model.Intake{
		OrderID:         sub.OrderID,
		FirstName:       sub.FirstName,
		LastName:        sub.LastName,
		Email:           sub.Email,
		Phone:           sub.Phone,
		LinkedInURL:     sub.LinkedInURL,
		JobURL:          sub.JobURL,
		JobDescription:  sub.JobDescription,
		AdditionalNotes: sub.AdditionalNotes,
	}
	if sub.SubmissionToken != "" {
		token := sub.SubmissionToken
		intake.SubmissionToken = &token
	}

	if sub.Resume != nil {
		path, err := u.uploadResume(ctx, sub.OrderID, sub.Resume)
		if err != nil {
			return nil, err
		}
		intake.ResumePath = &path
	}

	if err := u.intakes.Create(ctx, intake); err != nil {
		if intake.ResumePath != nil {
			u.logger.Warn("resume stored without intake record", slog.String("path", *intake.ResumePath))
		}
		return nil, domainErrors.Storage("save intake", err)
	}

	u.logger.Info("intake stored", slog.String("intake", intake.ID), slog.String("order", intake.OrderID))

	snapshot := *intake
	if !u.dispatcher.Submit("notify-intake", func(ctx context.Context) error {
		return u.notifier.NotifyIntake(ctx, snapshot.OrderID, snapshot)
	}) {
		u.logger.Warn("intake notification dropped", slog.String("intake", intake.ID))
	}

	return intake, nil
}

func (u *IntakeUseCase) uploadResume(ctx context.Context, orderID string, file *model.ResumeFile) (string, error) {
	contentType, ext, err := ValidateResume(file)
	if err != nil {
		return "", err
	}
	if file.Content == nil {
		return "", &domainErrors.InvalidFileError{Reason: "resume content missing"}
	}

	path := fmt.Sprintf("%s/resume-%d.%s", orderID, u.now().UnixNano(), ext)
	if err := u.store.Upload(ctx, path, contentType, file.Content); err != nil {
		u.logger.Error("resume upload failed", slog.String("order", orderID), slog.String("error", err.Error()))
		return "", domainErrors.Storage("upload resume", err)
	}
	return path, nil
}

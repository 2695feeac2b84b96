package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

func validSubmission(orderID string) IntakeSubmission {
	return IntakeSubmission{
		OrderID:        orderID,
		FirstName:      " Ada ",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		LinkedInURL:    "https://linkedin.com/in/ada",
		JobDescription: "Senior PM role at Acme",
	}
}

func pdfResume(size int64) *model.ResumeFile {
	return &model.ResumeFile{
		Filename:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        size,
		Content:     strings.NewReader("%PDF-1.7"),
	}
}

func seedOrder(e *env, id string) {
	e.orders.Put(model.Order{
		ID:                id,
		CustomerEmail:     "ada@example.com",
		OfferingID:        "anticipate",
		OfferingName:      "Anticipate Interview Questions",
		Amount:            7900,
		Currency:          "usd",
		CheckoutSessionID: "cs_" + id,
		Status:            model.OrderStatusCompleted,
	})
}

func TestIntakeSubmitPersistsAndDispatchesOnce(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	e.intake.now = func() time.Time { return time.Unix(0, 42) }

	sub := validSubmission(testOrderID)
	sub.SubmissionToken = "tok"
	sub.Resume = pdfResume(1024)

	intake, err := e.intake.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if e.intakes.Count() != 1 || intake.OrderID != testOrderID {
		t.Fatalf("expected one intake for the order, got %d %+v", e.intakes.Count(), intake)
	}
	if intake.FirstName != "Ada" {
		t.Fatalf("expected trimmed first name, got %q", intake.FirstName)
	}
	if intake.ResumePath == nil || *intake.ResumePath != testOrderID+"/resume-42.pdf" {
		t.Fatalf("unexpected resume path %v", intake.ResumePath)
	}
	if intake.SubmissionToken == nil || *intake.SubmissionToken != "tok" {
		t.Fatal("expected submission token stored")
	}
	if e.store.UploadCount() != 1 || e.store.Uploads[0].ContentType != "application/pdf" {
		t.Fatalf("unexpected uploads %+v", e.store.Uploads)
	}
	if names := e.dispatcher.Submitted(); len(names) != 1 || names[0] != "notify-intake" {
		t.Fatalf("expected exactly one notification task, got %v", names)
	}
}

func TestIntakeSubmitRequiredFields(t *testing.T) {
	fields := map[string]func(*IntakeSubmission){
		"orderId":        func(s *IntakeSubmission) { s.OrderID = "" },
		"firstName":      func(s *IntakeSubmission) { s.FirstName = "  " },
		"lastName":       func(s *IntakeSubmission) { s.LastName = "" },
		"email":          func(s *IntakeSubmission) { s.Email = "" },
		"linkedin":       func(s *IntakeSubmission) { s.LinkedInURL = "\t" },
		"jobDescription": func(s *IntakeSubmission) { s.JobDescription = "   " },
	}
	for field, mutate := range fields {
		t.Run(field, func(t *testing.T) {
			e := newEnv()
			seedOrder(e, testOrderID)
			sub := validSubmission(testOrderID)
			mutate(&sub)

			_, err := e.intake.Submit(context.Background(), sub)
			var verr *domainErrors.ValidationError
			if !errors.As(err, &verr) || verr.Field != field {
				t.Fatalf("expected validation error for %s, got %v", field, err)
			}
			if e.intakes.Count() != 0 || len(e.dispatcher.Submitted()) != 0 {
				t.Fatal("rejected submission must not persist or notify")
			}
		})
	}
}

func TestIntakeSubmitMalformedOrderID(t *testing.T) {
	e := newEnv()
	e.orders.GetErr = errors.New("must not reach storage")
	sub := validSubmission("ord-123x")
	sub.Resume = pdfResume(10)

	_, err := e.intake.Submit(context.Background(), sub)
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) || verr.Field != "orderId" {
		t.Fatalf("expected orderId validation error, got %v", err)
	}
	if errors.Is(err, domainErrors.ErrStorage) || e.store.UploadCount() != 0 || e.intakes.Count() != 0 {
		t.Fatal("malformed order id must be rejected before any storage work")
	}
}

func TestIntakeSubmitInvalidEmail(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	sub := validSubmission(testOrderID)
	sub.Email = "ada-at-example"
	if _, err := e.intake.Submit(context.Background(), sub); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestIntakeSubmitOversizedResumeSkipsUpload(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	sub := validSubmission(testOrderID)
	sub.Resume = pdfResume(6 * 1024 * 1024)

	if _, err := e.intake.Submit(context.Background(), sub); !errors.Is(err, domainErrors.ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}
	if e.store.UploadCount() != 0 || e.intakes.Count() != 0 {
		t.Fatal("oversized resume must not be uploaded or recorded")
	}
}

func TestIntakeSubmitWrongTypeSkipsUpload(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	sub := validSubmission(testOrderID)
	sub.Resume = &model.ResumeFile{Filename: "cv.exe", ContentType: "application/x-msdownload", Size: 10, Content: strings.NewReader("MZ")}

	if _, err := e.intake.Submit(context.Background(), sub); !errors.Is(err, domainErrors.ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}
	if e.store.UploadCount() != 0 {
		t.Fatal("no upload expected")
	}
}

func TestIntakeSubmitUnknownOrder(t *testing.T) {
	e := newEnv()
	sub := validSubmission(unknownUUID)
	sub.Resume = pdfResume(10)

	if _, err := e.intake.Submit(context.Background(), sub); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if e.store.UploadCount() != 0 {
		t.Fatal("unknown order must not leave an orphaned upload")
	}
}

func TestIntakeSubmitUploadFailureWritesNothing(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	e.store.UploadErr = errors.New("bucket unavailable")
	sub := validSubmission(testOrderID)
	sub.Resume = pdfResume(10)

	if _, err := e.intake.Submit(context.Background(), sub); !errors.Is(err, domainErrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if e.intakes.Count() != 0 || len(e.dispatcher.Submitted()) != 0 {
		t.Fatal("upload failure must abort the submission")
	}
}

func TestIntakeSubmitInsertFailure(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	e.intakes.CreateErr = errors.New("insert failed")

	if _, err := e.intake.Submit(context.Background(), validSubmission(testOrderID)); !errors.Is(err, domainErrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(e.dispatcher.Submitted()) != 0 {
		t.Fatal("no notification for unsaved intake")
	}
}

func TestIntakeSubmitSurvivesNotificationFailure(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	e.dispatcher.Run = true
	e.mailer.Fail = map[string]error{
		"ada@example.com": errors.New("provider down"),
		testOperator:      errors.New("provider down"),
	}

	if _, err := e.intake.Submit(context.Background(), validSubmission(testOrderID)); err != nil {
		t.Fatalf("notification failure must not fail submission: %v", err)
	}
	if e.intakes.Count() != 1 {
		t.Fatalf("expected intake to remain recorded, got %d", e.intakes.Count())
	}
	if len(e.dispatcher.Errors) != 1 || !errors.Is(e.dispatcher.Errors[0], domainErrors.ErrNotification) {
		t.Fatalf("expected task to report notification error, got %v", e.dispatcher.Errors)
	}
}

func TestIntakeSubmitDroppedDispatchStillSucceeds(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	e.dispatcher.Reject = true

	if _, err := e.intake.Submit(context.Background(), validSubmission(testOrderID)); err != nil {
		t.Fatalf("dropped dispatch must not fail submission: %v", err)
	}
	if e.intakes.Count() != 1 {
		t.Fatal("expected intake recorded")
	}
}

func TestIntakeDuplicatesAllowed(t *testing.T) {
	e := newEnv()
	seedOrder(e, testOrderID)
	for i := 0; i < 2; i++ {
		sub := validSubmission(testOrderID)
		sub.SubmissionToken = "same"
		if _, err := e.intake.Submit(context.Background(), sub); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if e.intakes.Count() != 2 {
		t.Fatalf("expected duplicates to be stored, got %d", e.intakes.Count())
	}
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"text/template"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/interviewprep/internal/config"
	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
)

// ExcerptLimit caps job description and notes quoted in operator alerts.
const ExcerptLimit = 500

var (
	receiptTemplate = template.Must(template.New("receipt").Parse(`Hi,

Thank you for purchasing {{.Order.OfferingName}} ({{.Amount}} {{.Currency}}).

Your order number is {{.Order.ID}}. To get started, please complete your intake form:
{{.IntakeURL}}

Once we receive it, your personalized materials will be delivered within 24 hours.

Andrew
`))

	orderAlertTemplate = template.Must(template.New("order-alert").Parse(`New order received.

Customer: {{.Order.CustomerEmail}}
Order: {{.Order.ID}}
Package: {{.Order.OfferingName}}
Amount: {{.Amount}} {{.Currency}}
`))

	intakeReceiptTemplate = template.Must(template.New("intake-receipt").Parse(`Hi {{.Intake.FirstName}},

We received your intake form for {{.Order.OfferingName}}.

Your personalized materials will be delivered within 24 hours.

Andrew
`))

	intakeAlertTemplate = template.Must(template.New("intake-alert").Parse(`New intake form submitted.

Name: {{.Intake.FullName}}
Email: {{.Intake.Email}}
Phone: {{if .Intake.Phone}}{{.Intake.Phone}}{{else}}-{{end}}
LinkedIn: {{.Intake.LinkedInURL}}
Resume: {{if .Intake.ResumePath}}attached{{else}}none{{end}}
Package: {{.Order.OfferingName}}
Order: {{.Order.ID}}

Job description:
{{.JobExcerpt}}
{{if .NotesExcerpt}}
Additional notes:
{{.NotesExcerpt}}
{{end}}
Review: {{.ConsoleURL}}
`))
)

// NotificationUseCase composes and sends order and intake messages.
type NotificationUseCase struct {
	orders   repository.OrderRepository
	mailer   Mailer
	baseURL  string
	operator string
	logger   *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(orders repository.OrderRepository, mailer Mailer, cfg *config.Config, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{
		orders:   orders,
		mailer:   mailer,
		baseURL:  cfg.PublicBaseURL,
		operator: cfg.OperatorEmail,
		logger:   logger,
	}
}

type orderView struct {
	Order      *model.Order
	Amount     string
	Currency   string
	IntakeURL  string
	ConsoleURL string

	Intake       model.Intake
	JobExcerpt   string
	NotesExcerpt string
}

// ConfirmOrder marks the order completed and sends the receipt and operator alert.
func (u *NotificationUseCase) ConfirmOrder(ctx context.Context, orderID string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return domainErrors.Storage("load order", err)
	}
	if err := u.orders.MarkCompleted(ctx, order.ID); err != nil {
		return domainErrors.Storage("complete order", err)
	}

	view := u.newView(order)
	view.IntakeURL = u.baseURL + "/intake-form?order_id=" + url.QueryEscape(order.ID)

	customer, err := render(receiptTemplate, view)
	if err != nil {
		return err
	}
	operator, err := render(orderAlertTemplate, view)
	if err != nil {
		return err
	}

	return u.sendPair(ctx,
		model.Message{
			To:      order.CustomerEmail,
			Subject: "Order Confirmation - " + order.OfferingName,
			Text:    customer,
			Tags:    []string{"order_confirmation"},
		},
		model.Message{
			To:      u.operator,
			Subject: "New order: " + order.OfferingName,
			Text:    operator,
			Tags:    []string{"new_order_notification"},
		},
	)
}

// NotifyIntake sends the applicant confirmation and the operator alert for a stored intake.
func (u *NotificationUseCase) NotifyIntake(ctx context.Context, orderID string, intake model.Intake) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return domainErrors.Storage("load order", err)
	}

	view := u.newView(order)
	view.Intake = intake
	view.JobExcerpt = Excerpt(intake.JobDescription, ExcerptLimit)
	view.NotesExcerpt = Excerpt(intake.AdditionalNotes, ExcerptLimit)
	view.ConsoleURL = u.baseURL + "/admin/intakes/" + url.PathEscape(intake.ID)

	applicant, err := render(intakeReceiptTemplate, view)
	if err != nil {
		return err
	}
	operator, err := render(intakeAlertTemplate, view)
	if err != nil {
		return err
	}

	return u.sendPair(ctx,
		model.Message{
			To:      intake.Email,
			ToName:  intake.FullName(),
			Subject: "We received your intake form",
			Text:    applicant,
			Tags:    []string{"intake_completed"},
		},
		model.Message{
			To:      u.operator,
			Subject: "New intake: " + intake.FullName(),
			Text:    operator,
			Tags:    []string{"intake_completed_notification"},
		},
	)
}

func (u *NotificationUseCase) newView(order *model.Order) orderView {
	return orderView{
		Order:    order,
		Amount:   FormatAmount(order.Amount),
		Currency: strings.ToUpper(order.Currency),
	}
}

// sendPair delivers both messages concurrently; one failing never stops the other.
func (u *NotificationUseCase) sendPair(ctx context.Context, msgs ...model.Message) error {
	var g errgroup.Group
	for _, msg := range msgs {
		g.Go(func() error {
			if err := u.mailer.Send(ctx, msg); err != nil {
				nerr := &domainErrors.NotificationError{Recipient: msg.To, Err: err}
				u.logger.Error("notification failed",
					slog.String("subject", msg.Subject),
					slog.String("error", nerr.Error()),
				)
				return nerr
			}
			return nil
		})
	}
	return g.Wait()
}

// FormatAmount renders minor units with two decimals.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// excerptMarker ends an excerpt that was cut short.
const excerptMarker = "..."

// Excerpt trims s to at most limit runes, appending excerptMarker when it clips.
func Excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRightFunc(string(runes[:limit]), unicode.IsSpace) + excerptMarker
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

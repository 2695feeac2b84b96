package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// RejectedError reports a recipient refused by the provider.
type RejectedError struct {
	Email  string
	Status string
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("message to %s %s: %s", e.Email, e.Status, e.Reason)
	}
	return fmt.Sprintf("message to %s %s", e.Email, e.Status)
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
}

type message struct {
	Subject   string      `json:"subject"`
	Text      string      `json:"text"`
	FromEmail string      `json:"from_email"`
	FromName  string      `json:"from_name,omitempty"`
	To        []recipient `json:"to"`
	Tags      []string    `json:"tags,omitempty"`
}

type sendRequest struct {
	Key     string  `json:"key"`
	Message message `json:"message"`
}

type sendResult struct {
	Email        string `json:"email"`
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason"`
	ID           string `json:"_id"`
}

type apiError struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Sender identifies the From header of outgoing messages.
type Sender struct {
	Email string
	Name  string
}

// MandrillClient sends transactional email through the Mandrill API.
type MandrillClient struct {
	http    *resty.Client
	apiKey  string
	from    Sender
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewMandrillClient builds a client limited to ratePerSecond sends.
func NewMandrillClient(baseURL, apiKey string, from Sender, ratePerSecond float64, logger *slog.Logger) (*MandrillClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mailer url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mailer url must be absolute")
	}
	if from.Email == "" {
		return nil, fmt.Errorf("mailer sender email must be provided")
	}
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}

	client := resty.New().
		SetBaseURL(parsed.String()).
		SetTimeout(10 * time.Second)

	return &MandrillClient{
		http:    client,
		apiKey:  apiKey,
		from:    from,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		logger:  logger,
	}, nil
}

// Send delivers msg once; callers own any retry policy.
func (c *MandrillClient) Send(ctx context.Context, msg model.Message) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait send slot: %w", err)
	}

	body := sendRequest{
		Key: c.apiKey,
		Message: message{
			Subject:   msg.Subject,
			Text:      msg.Text,
			FromEmail: c.from.Email,
			FromName:  c.from.Name,
			To:        []recipient{{Email: msg.To, Name: msg.ToName, Type: "to"}},
			Tags:      msg.Tags,
		},
	}

	var (
		results []sendResult
		failure apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&results).
		SetError(&failure).
		Post("/messages/send.json")
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send message: %s (%s)", failure.Name, resp.Status())
	}

	for _, r := range results {
		switch r.Status {
		case "sent", "queued", "scheduled":
			c.logger.Debug("message accepted", slog.String("status", r.Status), slog.Any("tags", msg.Tags))
		default:
			return &RejectedError{Email: r.Email, Status: r.Status, Reason: r.RejectReason}
		}
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs recipient and subject.
func (m *LogMailer) Send(ctx context.Context, msg model.Message) error {
	m.logger.Info("mail delivery disabled, message logged",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

package test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// PaymentProviderStub records checkout requests and returns sequential sessions.
type PaymentProviderStub struct {
	mu        sync.Mutex
	Customers map[string]string
	FindErr   error
	CreateErr error
	Requests  []model.CheckoutSessionRequest
	Lookups   []string
	Next      int
}

// FindCustomer returns the configured customer id for email.
func (s *PaymentProviderStub) FindCustomer(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lookups = append(s.Lookups, email)
	if s.FindErr != nil {
		return "", s.FindErr
	}
	return s.Customers[email], nil
}

// CreateCheckoutSession returns cs_test_<n> sessions unless CreateErr is set.
func (s *PaymentProviderStub) CreateCheckoutSession(ctx context.Context, req model.CheckoutSessionRequest) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, req)
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.Next++
	id := fmt.Sprintf("cs_test_%d", s.Next)
	return &model.CheckoutSession{ID: id, URL: "https://checkout.example/pay/" + id}, nil
}

// MailerStub collects sent messages. Recipients listed in Fail are rejected.
type MailerStub struct {
	mu   sync.Mutex
	Sent []model.Message
	Fail map[string]error
}

// Send records msg or returns the failure configured for its recipient.
func (s *MailerStub) Send(ctx context.Context, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.Fail[msg.To]; ok {
		return err
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// Messages returns a snapshot of sent messages.
func (s *MailerStub) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.Sent))
	copy(out, s.Sent)
	return out
}

// SentTo returns messages addressed to recipient.
func (s *MailerStub) SentTo(recipient string) []model.Message {
	var out []model.Message
	for _, m := range s.Messages() {
		if m.To == recipient {
			out = append(out, m)
		}
	}
	return out
}

// Upload is a recorded object store write.
type Upload struct {
	Path        string
	ContentType string
	Body        []byte
}

// ObjectStoreStub keeps uploads in memory.
type ObjectStoreStub struct {
	mu        sync.Mutex
	Uploads   []Upload
	UploadErr error
	SignErr   error
	SignedTTL time.Duration
}

// Upload stores body under path.
func (s *ObjectStoreStub) Upload(ctx context.Context, path, contentType string, body io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadErr != nil {
		return s.UploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.Uploads = append(s.Uploads, Upload{Path: path, ContentType: contentType, Body: data})
	return nil
}

// SignedURL returns a fake expiring link.
func (s *ObjectStoreStub) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SignErr != nil {
		return "", s.SignErr
	}
	s.SignedTTL = ttl
	return fmt.Sprintf("https://storage.example/sign/%s?expires=%d", path, int(ttl.Seconds())), nil
}

// UploadCount returns number of successful uploads.
func (s *ObjectStoreStub) UploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Uploads)
}

// DispatcherStub runs submitted tasks inline when Run is set, otherwise only records them.
type DispatcherStub struct {
	mu     sync.Mutex
	Names  []string
	Tasks  []func(context.Context) error
	Errors []error
	Run    bool
	Reject bool
}

// Submit records the task and optionally executes it synchronously.
func (s *DispatcherStub) Submit(name string, task func(context.Context) error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Reject {
		return false
	}
	s.Names = append(s.Names, name)
	s.Tasks = append(s.Tasks, task)
	if s.Run {
		s.Errors = append(s.Errors, task(context.Background()))
	}
	return true
}

// Submitted returns names of accepted tasks.
func (s *DispatcherStub) Submitted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Names))
	copy(out, s.Names)
	return out
}

package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/polkiloo/interviewprep/internal/config"
	testhelpers "github.com/polkiloo/interviewprep/internal/test"
)

const (
	testBaseURL  = "https://nailyourjobinterview.com"
	testOperator = "ops@nailyourjobinterview.com"
	testGuest    = "guest@example.com"

	testOrderID = "6f1c2a4e-8b3d-4c5e-9f70-1a2b3c4d5e6f"
	unknownUUID = "0b9e7c1d-2f3a-4b5c-8d6e-7f8091a2b3c4"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		PublicBaseURL: testBaseURL,
		GuestEmail:    testGuest,
		OperatorEmail: testOperator,
		AdminEmail:    "admin@nailyourjobinterview.com",
		SignedURLTTL:  time.Hour,
	}
}

// env bundles use cases over shared in-memory stubs.
type env struct {
	cfg        *config.Config
	users      *testhelpers.UserRepositoryStub
	orders     *testhelpers.OrderRepositoryStub
	intakes    *testhelpers.IntakeRepositoryStub
	payments   *testhelpers.PaymentProviderStub
	mailer     *testhelpers.MailerStub
	store      *testhelpers.ObjectStoreStub
	dispatcher *testhelpers.DispatcherStub

	auth     *AuthUseCase
	checkout *CheckoutUseCase
	order    *OrderUseCase
	intake   *IntakeUseCase
	notifier *NotificationUseCase
	console  *ConsoleUseCase
}

func newEnv() *env {
	e := &env{
		cfg:        testConfig(),
		users:      testhelpers.NewUserRepositoryStub(),
		orders:     testhelpers.NewOrderRepositoryStub(),
		payments:   &testhelpers.PaymentProviderStub{},
		mailer:     &testhelpers.MailerStub{},
		store:      &testhelpers.ObjectStoreStub{},
		dispatcher: &testhelpers.DispatcherStub{},
	}
	e.intakes = testhelpers.NewIntakeRepositoryStub(e.orders)

	catalog, err := NewCatalog(DefaultOfferings)
	if err != nil {
		panic(err)
	}
	logger := testLogger()
	e.auth = NewAuthUseCase(e.users, e.users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, e.cfg, logger)
	e.notifier = NewNotificationUseCase(e.orders, e.mailer, e.cfg, logger)
	e.checkout = NewCheckoutUseCase(catalog, e.payments, e.orders, e.auth, e.cfg, logger)
	e.order = NewOrderUseCase(e.orders, e.notifier, e.dispatcher, logger)
	e.intake = NewIntakeUseCase(e.orders, e.intakes, e.store, e.notifier, e.dispatcher, logger)
	e.console = NewConsoleUseCase(e.intakes, e.store, e.cfg, logger)
	return e
}

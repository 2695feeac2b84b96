package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
	"github.com/polkiloo/interviewprep/internal/test/facadetest"
)

func TestStorefrontOfferings(t *testing.T) {
	facade := &facadetest.PrepFacadeStub{OfferingsList: []model.Offering{
		{ID: "anticipate", Name: "Anticipate Interview Questions", Amount: 7900, Currency: "usd"},
		{ID: "allin", Name: "All-In Interview Prep Package Plus", Amount: 167900, Currency: "usd"},
	}}

	resp := performRequest(t, http.MethodGet, "/offerings", "/offerings", NewStorefrontHandler(facade, discardLogger()).Offerings, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list []dto.OfferingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 || list[0].ID != "anticipate" || list[1].Price != "1679.00" {
		t.Fatalf("unexpected offerings %+v", list)
	}
}

func TestStorefrontCheckout(t *testing.T) {
	facade := &facadetest.PrepFacadeStub{}
	handler := NewStorefrontHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", handler.Checkout, nil,
		jsonBody(t, dto.CheckoutRequest{OfferingID: " express "}),
		map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token-user-7"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body dto.CheckoutResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.RedirectURL != "https://checkout.example/pay/express" {
		t.Fatalf("unexpected redirect %q", body.RedirectURL)
	}
	if len(facade.Tokens) != 1 || facade.Tokens[0] != "token-user-7" {
		t.Fatalf("expected caller token to reach facade, got %v", facade.Tokens)
	}
}

func TestStorefrontCheckoutErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"invalid offering", domainErrors.ErrInvalidOffering, http.StatusBadRequest, "checkout failed: invalid offering"},
		{"provider", fmt.Errorf("%w: stripe said sk_live_secret", domainErrors.ErrPaymentProvider), http.StatusBadGateway, "checkout failed: payment provider unavailable"},
		{"storage", domainErrors.Storage("save order", errors.New("conn reset")), http.StatusInternalServerError, "checkout failed: could not record order"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &facadetest.PrepFacadeStub{CheckoutFn: func(context.Context, string, string) (string, error) { return "", tc.err }}
			resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", NewStorefrontHandler(facade, discardLogger()).Checkout, nil,
				jsonBody(t, dto.CheckoutRequest{OfferingID: "gold"}), jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if got := decodeError(t, resp).Error; got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStorefrontLookupOrder(t *testing.T) {
	var gotRef string
	facade := &facadetest.PrepFacadeStub{LookupFn: func(ctx context.Context, ref string) (*model.Order, error) {
		gotRef = ref
		return &model.Order{ID: "order-1", CustomerEmail: "ada@example.com", OfferingName: "Express Interview Prep Package Plus", Amount: 74900, Currency: "usd", Status: model.OrderStatusPending}, nil
	}}
	handler := NewStorefrontHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodPost, "/lookup", "/lookup", handler.LookupOrder, nil,
		strings.NewReader(`{"sessionId":"cs_test_1"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotRef != "cs_test_1" {
		t.Fatalf("expected alias to be used, got %q", gotRef)
	}
	var body dto.LookupResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Order.Email != "ada@example.com" || body.Order.Amount != 74900 || body.Order.Status != "pending" {
		t.Fatalf("unexpected order %+v", body.Order)
	}
}

func TestStorefrontLookupOrderErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		field  string
	}{
		{"blank", domainErrors.Required("sessionReference"), http.StatusBadRequest, "sessionReference"},
		{"not yet written", domainErrors.ErrNotFound, http.StatusNotFound, ""},
		{"storage", domainErrors.Storage("lookup order", errors.New("timeout")), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &facadetest.PrepFacadeStub{LookupFn: func(context.Context, string) (*model.Order, error) { return nil, tc.err }}
			resp := performRequest(t, http.MethodPost, "/lookup", "/lookup", NewStorefrontHandler(facade, discardLogger()).LookupOrder, nil,
				jsonBody(t, dto.LookupRequest{SessionReference: "cs_x"}), jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if got := decodeError(t, resp).Field; got != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, got)
			}
		})
	}
}

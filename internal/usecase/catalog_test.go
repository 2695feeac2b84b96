package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	want := map[string]int64{"anticipate": 7900, "express": 74900, "allin": 167900}
	for id, amount := range want {
		o, err := catalog.Lookup(id)
		if err != nil {
			t.Fatalf("lookup %s: %v", id, err)
		}
		if o.Amount != amount || o.Currency != "usd" {
			t.Fatalf("unexpected offering %+v", o)
		}
	}

	list := catalog.List()
	if len(list) != 3 || list[0].ID != "anticipate" || list[2].ID != "allin" {
		t.Fatalf("unexpected order %+v", list)
	}
	list[0].Amount = 1
	if o, _ := catalog.Lookup("anticipate"); o.Amount != 7900 {
		t.Fatal("list must return a copy")
	}

	if _, err := catalog.Lookup("platinum"); !errors.Is(err, domainErrors.ErrInvalidOffering) {
		t.Fatalf("expected ErrInvalidOffering, got %v", err)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	cases := []struct {
		name  string
		items []model.Offering
		want  string
	}{
		{"empty", nil, "empty"},
		{"missing id", []model.Offering{{Name: "x", Amount: 1, Currency: "usd"}}, "id is required"},
		{"missing name", []model.Offering{{ID: "a", Amount: 1, Currency: "usd"}}, "name is required"},
		{"zero amount", []model.Offering{{ID: "a", Name: "A", Currency: "usd"}}, "amount must be positive"},
		{"missing currency", []model.Offering{{ID: "a", Name: "A", Amount: 1}}, "currency is required"},
		{"duplicate", []model.Offering{{ID: "a", Name: "A", Amount: 1, Currency: "usd"}, {ID: "a", Name: "B", Amount: 2, Currency: "usd"}}, "duplicate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCatalog(tc.items); err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadCatalogFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `offerings:
  - id: mock
    name: Mock Interview
    amount: 15000
    currency: USD
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	o, err := catalog.Lookup(" mock ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if o.Currency != "usd" || o.Amount != 15000 {
		t.Fatalf("unexpected offering %+v", o)
	}

	if _, err := LoadCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("offerings: [\n"), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := LoadCatalog(bad); err == nil || !strings.Contains(err.Error(), "parse catalog") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

package usecase

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// DefaultOfferings is the built-in price list.
var DefaultOfferings = []model.Offering{
	{ID: "anticipate", Name: "Anticipate Interview Questions", Amount: 7900, Currency: "usd"},
	{ID: "express", Name: "Express Interview Prep Package Plus", Amount: 74900, Currency: "usd"},
	{ID: "allin", Name: "All-In Interview Prep Package Plus", Amount: 167900, Currency: "usd"},
}

// Catalog is an immutable list of offerings keyed by id.
type Catalog struct {
	items []model.Offering
	byID  map[string]model.Offering
}

type catalogFile struct {
	Offerings []model.Offering `yaml:"offerings"`
}

// NewCatalog validates offerings and builds a catalog preserving their order.
func NewCatalog(offerings []model.Offering) (*Catalog, error) {
	if len(offerings) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	c := &Catalog{byID: make(map[string]model.Offering, len(offerings))}
	for i, o := range offerings {
		o.ID = strings.TrimSpace(o.ID)
		o.Name = strings.TrimSpace(o.Name)
		o.Currency = strings.ToLower(strings.TrimSpace(o.Currency))
		switch {
		case o.ID == "":
			return nil, fmt.Errorf("offering %d: id is required", i)
		case o.Name == "":
			return nil, fmt.Errorf("offering %q: name is required", o.ID)
		case o.Amount <= 0:
			return nil, fmt.Errorf("offering %q: amount must be positive", o.ID)
		case o.Currency == "":
			return nil, fmt.Errorf("offering %q: currency is required", o.ID)
		}
		if _, dup := c.byID[o.ID]; dup {
			return nil, fmt.Errorf("offering %q: duplicate id", o.ID)
		}
		c.byID[o.ID] = o
		c.items = append(c.items, o)
	}
	return c, nil
}

// LoadCatalog reads offerings from a YAML file, or returns the defaults when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultOfferings)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(file.Offerings)
}

// Lookup returns the offering with id or ErrInvalidOffering.
func (c *Catalog) Lookup(id string) (model.Offering, error) {
	o, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return model.Offering{}, domainErrors.ErrInvalidOffering
	}
	return o, nil
}

// List returns offerings in declaration order.
func (c *Catalog) List() []model.Offering {
	out := make([]model.Offering, len(c.items))
	copy(out, c.items)
	return out
}

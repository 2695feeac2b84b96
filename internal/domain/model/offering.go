package model

// Offering is a purchasable service package with a fixed price.
type Offering struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Amount   int64  `yaml:"amount"`
	Currency string `yaml:"currency"`
}

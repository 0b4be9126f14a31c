package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors are the CSS selectors used to pull hotel cards out of a
// search results page. Any field left empty in the YAML file keeps its
// default value.
type Selectors struct {
	Card    string `yaml:"card"`
	Title   string `yaml:"title"`
	Link    string `yaml:"link"`
	Rating  string `yaml:"rating"`
	Price   string `yaml:"price"`
	Address string `yaml:"address"`

	// Used by the fallback scan when no card matches.
	FallbackContainers string   `yaml:"fallback_containers"`
	FallbackNames      []string `yaml:"fallback_names"`
}

// DefaultSelectors match booking.com's property card markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Card:               `div[data-testid="property-card"]`,
		Title:              `[data-testid="title"]`,
		Link:               `a[data-testid="title-link"]`,
		Rating:             `[data-testid="review-score"]`,
		Price:              `[data-testid="price-and-discounted-price"]`,
		Address:            `[data-testid="address"]`,
		FallbackContainers: "div, article, li, section",
		FallbackNames:      []string{`[data-testid="title"]`, "h3", "h2", "h4", "a"},
	}
}

// LoadSelectors reads a YAML selector file. An empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read selectors file at '%s': %w", path, err)
	}

	var override Selectors
	if err := yaml.Unmarshal(data, &override); err != nil {
		return sel, fmt.Errorf("failed to parse YAML selectors: %w", err)
	}

	merge(&sel.Card, override.Card)
	merge(&sel.Title, override.Title)
	merge(&sel.Link, override.Link)
	merge(&sel.Rating, override.Rating)
	merge(&sel.Price, override.Price)
	merge(&sel.Address, override.Address)
	merge(&sel.FallbackContainers, override.FallbackContainers)
	if len(override.FallbackNames) > 0 {
		sel.FallbackNames = override.FallbackNames
	}
	return sel, nil
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

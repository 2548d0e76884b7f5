package models

// AddOnService is an optional per-person service offered with a package
type AddOnService struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Price Amount `json:"price"`
}

// Package represents a travel package from the upstream catalog.
// Field names mirror the upstream API payloads.
type Package struct {
	ID                 string         `json:"_id"`
	Name               string         `json:"name"`
	Slug               string         `json:"slug,omitempty"`
	Description        string         `json:"description,omitempty"`
	Category           string         `json:"category,omitempty"`
	Location           string         `json:"location,omitempty"`
	Duration           string         `json:"duration,omitempty"`
	Difficulty         string         `json:"difficulty,omitempty"`
	OriginalPrice      Amount         `json:"originalPrice"`
	OfferPrice         Amount         `json:"offerPrice"`
	AdvancePayment     Amount         `json:"advancePayment"`
	Rating             float64        `json:"rating,omitempty"`
	Featured           bool           `json:"featured,omitempty"`
	Trending           bool           `json:"trending,omitempty"`
	Images             []string       `json:"images,omitempty"`
	AdditionalServices []AddOnService `json:"additionalServices,omitempty"`
	BatchDates         []string       `json:"batchDates,omitempty"`
}

// UnitPrice returns the effective per-person price: the offer price
// when one is set, otherwise the original price.
func (p *Package) UnitPrice() Amount {
	if p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.OriginalPrice
}

// Savings returns the per-person discount against the original price.
// Zero when there is no offer or the prices are equal.
func (p *Package) Savings() Amount {
	if p.OfferPrice > 0 && p.OriginalPrice > p.OfferPrice {
		return p.OriginalPrice - p.OfferPrice
	}
	return 0
}

package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Bounds of the estimate form. The estimator itself accepts any values.
const (
	MinSqft = 100.0
	MaxSqft = 10000.0
	MinBath = 1
	MaxBath = 10
	MinBHK  = 1
	MaxBHK  = 10
)

const PriceUnit = "Lakhs"

var ErrInvalidRequest = errors.New("invalid estimate request")

type Request struct {
	Location  string  `json:"location"`
	TotalSqft float64 `json:"total_sqft"`
	Bath      int     `json:"bath"`
	BHK       int     `json:"bhk"`
}

// DefaultRequest mirrors the initial state of the estimate form.
func DefaultRequest() Request {
	return Request{TotalSqft: 1000, Bath: 2, BHK: 3}
}

func (r Request) Validate() error {
	switch {
	case math.IsNaN(r.TotalSqft) || r.TotalSqft < MinSqft || r.TotalSqft > MaxSqft:
		return fmt.Errorf("%w: total_sqft %v must be between %v and %v", ErrInvalidRequest, r.TotalSqft, MinSqft, MaxSqft)
	case r.Bath < MinBath || r.Bath > MaxBath:
		return fmt.Errorf("%w: bath %d must be between %d and %d", ErrInvalidRequest, r.Bath, MinBath, MaxBath)
	case r.BHK < MinBHK || r.BHK > MaxBHK:
		return fmt.Errorf("%w: bhk %d must be between %d and %d", ErrInvalidRequest, r.BHK, MinBHK, MaxBHK)
	}
	return nil
}

type cacheKey struct {
	location  string
	totalSqft float64
	bath      int
	bhk       int
}

func (r Request) key() cacheKey {
	return cacheKey{
		location:  strings.ToLower(r.Location),
		totalSqft: r.TotalSqft,
		bath:      r.Bath,
		bhk:       r.BHK,
	}
}

// Quote is an estimate together with the inputs it was computed from.
type Quote struct {
	Location        string    `json:"location"`
	TotalSqft       float64   `json:"total_sqft"`
	Bath            int       `json:"bath"`
	BHK             int       `json:"bhk"`
	Price           float64   `json:"price"`
	Unit            string    `json:"unit"`
	Display         string    `json:"display"`
	LocationMatched bool      `json:"location_matched"`
	CreatedAt       time.Time `json:"created_at"`
}

// FormatPrice renders a price the way the estimate page shows it.
func FormatPrice(price float64) string {
	return fmt.Sprintf("₹ %.2f %s", price, PriceUnit)
}

// DisplayLocation title-cases a location for echoing back to the user.
func DisplayLocation(location string) string {
	return cases.Title(language.English).String(strings.ToLower(location))
}

// Summary is the plain-text form of a quote.
func (q Quote) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimated Price: %s\n", q.Display)
	fmt.Fprintf(&b, "Location:   %s\n", q.Location)
	fmt.Fprintf(&b, "Total Area: %v sq.ft\n", q.TotalSqft)
	fmt.Fprintf(&b, "Bathrooms:  %d\n", q.Bath)
	fmt.Fprintf(&b, "BHK:        %d\n", q.BHK)
	if !q.LocationMatched {
		b.WriteString("Note: location not recognised, estimated without a location signal\n")
	}
	return b.String()
}

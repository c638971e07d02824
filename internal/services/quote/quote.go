// Package quote drafts the customer-facing quote around a technical
// specifications report: quote number, dates, the two parties, and the
// report itself. Renderers for Markdown, plain text, HTML and DOCX live in
// the sibling files.
package quote

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
)

// DateLayout is how dates are printed on a quote (US style, no padding).
const DateLayout = "1/2/2006"

// Party is one side of the quote (provider or customer).
type Party struct {
	Name   string `json:"name" yaml:"name"`
	Street string `json:"street" yaml:"street"`
	City   string `json:"city" yaml:"city"`
}

// IsZero reports whether no field of the party is set.
func (p Party) IsZero() bool {
	return p.Name == "" && p.Street == "" && p.City == ""
}

// Lines returns the non-empty address lines, name first.
func (p Party) Lines() []string {
	var lines []string
	for _, l := range []string{p.Name, p.Street, p.City} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Quote is a drafted quote document.
type Quote struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	Date             time.Time       `json:"date"`
	ValidUntil       time.Time       `json:"valid_until"`
	Provider         Party           `json:"provider"`
	Customer         Party           `json:"customer"`
	SourceFile       string          `json:"source_file,omitempty"`
	Report           techspec.Report `json:"report"`
	TechnicalDetails string          `json:"technical_details"`
}

// Generator creates quotes from a Profile.
//
// Go Pattern: The clock and the random source are struct fields so tests
// can pin them; NewGenerator fills in the real ones.
type Generator struct {
	profile Profile
	now     func() time.Time
	intN    func(n int) int
}

// NewGenerator returns a generator using profile, with missing values taken
// from DefaultProfile.
func NewGenerator(profile Profile) *Generator {
	return &Generator{
		profile: profile.withDefaults(),
		now:     time.Now,
		intN:    rand.IntN,
	}
}

// Profile returns the effective profile (defaults applied).
func (g *Generator) Profile() Profile {
	return g.profile
}

// New drafts a quote for report. A non-zero customer replaces the profile's
// default customer; sourceFile is the uploaded datasheet's name.
func (g *Generator) New(sourceFile string, report techspec.Report, customer Party) *Quote {
	date := g.now()

	if customer.IsZero() {
		customer = g.profile.Customer
	}

	return &Quote{
		ID:               uuid.New().String(),
		Number:           fmt.Sprintf("QUO-%d-%d", g.intN(10000), date.Year()),
		Date:             date,
		ValidUntil:       date.AddDate(0, 0, g.profile.ValidDays),
		Provider:         g.profile.Provider,
		Customer:         customer,
		SourceFile:       sourceFile,
		Report:           report,
		TechnicalDetails: report.String(),
	}
}

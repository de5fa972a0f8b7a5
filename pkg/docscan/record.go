package docscan

import (
	"strings"

	"github.com/WunderSocial/wunder-id/pkg/ptrx"
)

// DocumentType is the resolved kind of identity document.
type DocumentType string

const (
	DocumentTypePassport DocumentType = "passport"
	DocumentTypeLicense  DocumentType = "license"
	DocumentTypeUnknown  DocumentType = "unknown"
)

// Record is the engine's output: a structured identity record where
// every field is independently optional. Dates are ISO YYYY-MM-DD once
// present, never anything else. A record with every field nil is a
// valid, non-error outcome.
type Record struct {
	DocumentType      DocumentType `json:"documentType"`
	DocumentID        *string      `json:"documentId"`
	DOB               *string      `json:"dob"`
	DOBRaw            *string      `json:"dobRaw"`
	ValidFrom         *string      `json:"validFrom"`
	Expiry            *string      `json:"expiry"`
	IssuingCountry    *string      `json:"issuingCountry"`
	IssuingCountryRaw *string      `json:"issuingCountryRaw"`
	IssuingAuthority  *string      `json:"issuingAuthority"`
	Surname           *string      `json:"surname"`
	FirstWithTitle    *string      `json:"firstWithTitle"`
	FullName          *string      `json:"fullName"`
	Address           *string      `json:"address"`

	// Diagnostics is a non-authoritative debug bag. Callers must not
	// consult it for correctness.
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// Diagnostics captures what the run saw and which fallbacks it chose.
type Diagnostics struct {
	DumpPath        string            `json:"dumpPath,omitempty"`
	BlockTypeCounts map[string]int    `json:"blockTypeCounts,omitempty"`
	WordCount       int               `json:"wordCount"`
	LineSample      []string          `json:"lineSample,omitempty"`
	QueryAnswers    Answers           `json:"queryAnswers"`
	Calls           []CallMeta        `json:"calls,omitempty"`
	ChosenFallbacks map[string]string `json:"chosenFallbacks,omitempty"`
}

// deriveFullName fills FullName from the name parts when absent.
func (r *Record) deriveFullName() {
	if r.FullName != nil {
		return
	}
	first := strings.TrimSpace(ptrx.StringValue(r.FirstWithTitle))
	last := strings.TrimSpace(ptrx.StringValue(r.Surname))
	if first == "" && last == "" {
		return
	}
	full := strings.TrimSpace(first + " " + last)
	r.FullName = ptrx.StringOrNil(full)
}

// normalizeCountry maps free-text country mentions onto ISO codes. UK
// spellings collapse to GB; bare alpha-2/alpha-3 codes pass through;
// anything else keeps only the raw text.
func normalizeCountry(s string) (code, raw string) {
	if s == "" {
		return "", ""
	}
	u := stripAccents(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case "UK", "GB", "GBR", "UNITED KINGDOM", "GREAT BRITAIN":
		return "GB", s
	}
	if len(u) == 2 || len(u) == 3 {
		alpha := true
		for _, r := range u {
			if r < 'A' || r > 'Z' {
				alpha = false
				break
			}
		}
		if alpha {
			return u, s
		}
	}
	return "", s
}

package docscan

import (
	"regexp"
	"strings"
)

// licenceLabels is the closed set of numbered-field index tokens that
// mark a UK licence layout when they lead a line.
var licenceLabels = []string{"4A", "4B", "5", "8", "3", "1", "2"}

// newFieldLabels additionally covers tokens that start a fresh numbered
// field when walking past an address block.
var newFieldLabels = map[string]bool{
	"1": true, "2": true, "3": true,
	"4A": true, "4B": true, "4C": true,
	"5": true, "8": true, "9": true,
}

var (
	drivingLicenceRe = regexp.MustCompile(`(?i)DRIVING\s*LICEN[CS]E`)
	passportWordRe   = regexp.MustCompile(`(?i)PASSPORT|PASSEPORT`)
)

// Classify resolves the document type. Precedence: the caller's hint,
// then licence-layout signals (numbered-field labels, licence-specific
// query answers, the licence keyword), then the passport keyword in
// either language. The result is advisory: extractors still run on
// their own signals, so a wrong classification self-corrects at field
// level.
func Classify(set BlockSet, hint DocumentType) DocumentType {
	if hint == DocumentTypePassport || hint == DocumentTypeLicense {
		return hint
	}
	if looksLikeLicence(set) {
		return DocumentTypeLicense
	}
	if looksLikePassport(set.Lines) {
		return DocumentTypePassport
	}
	return DocumentTypeUnknown
}

func looksLikeLicence(set BlockSet) bool {
	if set.Answers.ValidFrom != "" || set.Answers.Expiry != "" || set.Answers.Address != "" {
		return true
	}
	for _, tokens := range tokenizeLines(set.Lines) {
		for _, t := range tokens {
			stripped := labelTrimRe.ReplaceAllString(t, "")
			for _, lbl := range licenceLabels {
				if stripped == lbl {
					return true
				}
			}
		}
	}
	for _, l := range set.Lines {
		if drivingLicenceRe.MatchString(l) || looksAddressy(l) && ukPostcodeRe.MatchString(stripAccents(strings.ToUpper(l))) {
			return true
		}
	}
	return false
}

func looksLikePassport(lines []string) bool {
	for _, l := range lines {
		if passportWordRe.MatchString(stripAccents(l)) {
			return true
		}
	}
	return false
}

package docscan

import (
	"regexp"
	"strings"
	"time"

	"github.com/WunderSocial/wunder-id/pkg/ptrx"
)

// licenceNumberRe is the strict DVLA licence-number format, applied
// after cleanup and tail normalization: 5 letters (or padding 9s),
// 6 digits, then 4-10 trailing alphanumerics.
var licenceNumberRe = regexp.MustCompile(`^[A-Z9]{5}\d{6}[A-Z0-9]{4,10}$`)

// Longest and shortest substring lengths tried when scanning free text
// for a licence number.
const (
	licenceScanMax = 24
	licenceScanMin = 15
)

var (
	leadingFieldLabelRe = regexp.MustCompile(`^\s*\(?\s*([1-9][A-Z]?)\s*[).:]?\s*`)
	lineLabel5Re        = regexp.MustCompile(`^\(?\s*5\s*[.):\-]\s*`)
	validFromLabelRe    = regexp.MustCompile(`VALID\s*FROM|ISSUED`)
	nonAlnumSpaceRe     = regexp.MustCompile(`[^A-Z0-9 ]`)
	dvlaRe              = regexp.MustCompile(`(?i)DVLA`)
	dvaRe               = regexp.MustCompile(`(?i)\bDVA\b`)
	dateCandidateRe     = regexp.MustCompile(`\b(\d{1,2}[/\-.\s]\d{1,2}[/\-.\s]\d{2,4}|\d{1,2}\s+[A-Za-zÉÛéû]{3,}\s+\d{2,4}|\d{4}-\d{2}-\d{2})\b`)
)

// ocrTailConfusions maps the letter misreads OCR commonly produces in
// the numeric part of a licence number to the intended digits.
var ocrTailConfusions = strings.NewReplacer(
	"O", "0",
	"I", "1",
	"Z", "2",
	"S", "5",
	"B", "8",
	"T", "7",
)

// normalizeLicenceTail corrects OCR letter/digit confusions in the tail
// of a licence-number candidate. The 5-character surname head is left
// untouched: only the part that should be mostly numeric is corrected.
func normalizeLicenceTail(alnum string) string {
	if len(alnum) < 16 {
		return alnum
	}
	return alnum[:5] + ocrTailConfusions.Replace(alnum[5:])
}

// cleanForLicence strips a leading numbered-field label and everything
// that is not alphanumeric, uppercased and accent-folded.
func cleanForLicence(s string) string {
	cand := leadingFieldLabelRe.ReplaceAllString(s, "")
	return nonAlnumRe.ReplaceAllString(stripAccents(strings.ToUpper(cand)), "")
}

// extractLicenceNumber cleans s, applies tail normalization and returns
// the longest substring (24 down to 15 characters) matching the strict
// licence format, or "". The corrected form is what gets validated.
func extractLicenceNumber(s string) string {
	norm := normalizeLicenceTail(cleanForLicence(s))
	var best string
	for l := licenceScanMax; l >= licenceScanMin; l-- {
		for i := 0; i+l <= len(norm); i++ {
			sub := norm[i : i+l]
			if licenceNumberRe.MatchString(sub) && len(sub) > len(best) {
				best = sub
			}
		}
		if best != "" {
			break
		}
	}
	return best
}

// licenceFromLabelledLine extracts a number from a line that starts with
// the field-5 label ("5.", "(5)", "5:" ...), or "".
func licenceFromLabelledLine(rawLine string) string {
	trimmed := strings.TrimSpace(rawLine)
	if !lineLabel5Re.MatchString(trimmed) {
		return ""
	}
	return extractLicenceNumber(lineLabel5Re.ReplaceAllString(trimmed, ""))
}

// dateRightOfLabel reads a date from the text right of tokens[idx] on
// line li, falling back to the following line. Tolerates extra tokens
// such as "4a. 05.06.2022 4c. DVLA".
func dateRightOfLabel(lines []string, linesTokens [][]string, li, idx int) string {
	same := strings.Join(linesTokens[li][idx+1:], " ")
	if iso, _ := ExtractDateFromString(same); iso != "" {
		return iso
	}
	if li+1 < len(lines) {
		if iso, _ := ExtractDateFromString(lines[li+1]); iso != "" {
			return iso
		}
	}
	return ""
}

// idRightOfLabel extracts a licence number from the text right of the
// label on the same line, else from the next line.
func idRightOfLabel(lines []string, linesTokens [][]string, li, idx int) string {
	up := strings.ToUpper(lines[li])
	token := linesTokens[li][idx]
	var right string
	if pos := strings.Index(up, token); pos >= 0 {
		right = lines[li][pos+len(token):]
	}
	if id := extractLicenceNumber(right); id != "" {
		return id
	}
	if li+1 < len(lines) {
		return extractLicenceNumber(lines[li+1])
	}
	return ""
}

// extractLicenceFields fills the licence-shaped subset of rec from the
// block set, using the numbered-field conventions of a UK licence.
// Every sub-step tolerates a miss: the field stays nil and siblings
// still run.
func extractLicenceFields(set BlockSet, rec *Record, chosen map[string]string, now time.Time) {
	linesTokens := tokenizeLines(set.Lines)

	// Expiry via field 4b.
	if rec.Expiry == nil {
		for li := range linesTokens {
			idx := findLabelIndex(linesTokens[li], "4B")
			if idx < 0 {
				continue
			}
			if iso := dateRightOfLabel(set.Lines, linesTokens, li, idx); iso != "" {
				rec.Expiry = ptrx.String(iso)
				chosen["expiry"] = "label 4b"
				break
			}
		}
	}

	// Valid-from via field 4a, else a "valid from"/"issued" text label.
	if rec.ValidFrom == nil {
		for li := range linesTokens {
			idx := findLabelIndex(linesTokens[li], "4A")
			if idx < 0 {
				continue
			}
			if iso := dateRightOfLabel(set.Lines, linesTokens, li, idx); iso != "" {
				rec.ValidFrom = ptrx.String(iso)
				chosen["validFrom"] = "label 4a"
				break
			}
		}
	}
	if rec.ValidFrom == nil {
		for li, line := range set.Lines {
			rawU := nonAlnumSpaceRe.ReplaceAllString(stripAccents(strings.ToUpper(line)), "")
			if !validFromLabelRe.MatchString(rawU) {
				continue
			}
			look := line
			if li+1 < len(set.Lines) {
				look += " " + set.Lines[li+1]
			}
			if iso, _ := ExtractDateFromString(look); iso != "" {
				rec.ValidFrom = ptrx.String(iso)
				chosen["validFrom"] = "valid-from text"
				break
			}
		}
	}

	// Licence number via field 5, widening from the labelled line to a
	// three-line window, then to the whole corpus.
	if rec.DocumentID == nil {
		for li := range linesTokens {
			idx := findLabelIndex(linesTokens[li], "5")
			if idx < 0 {
				continue
			}
			if id := licenceFromLabelledLine(set.Lines[li]); id != "" {
				rec.DocumentID = ptrx.String(id)
				chosen["documentId"] = "label 5 line"
				break
			}
			if id := idRightOfLabel(set.Lines, linesTokens, li, idx); id != "" {
				rec.DocumentID = ptrx.String(id)
				chosen["documentId"] = "label 5 right"
				break
			}
			win := strings.Join(window(set.Lines, li, 3), " ")
			if id := extractLicenceNumber(win); id != "" {
				rec.DocumentID = ptrx.String(id)
				chosen["documentId"] = "label 5 window"
				break
			}
		}
	}
	if rec.DocumentID == nil {
		if id := extractLicenceNumber(strings.Join(set.Lines, " ")); id != "" {
			rec.DocumentID = ptrx.String(id)
			chosen["documentId"] = "corpus scan"
		}
	}

	// Address via field 8, appending the next line when it is
	// address-shaped and does not start a new numbered field.
	if rec.Address == nil {
		for li := range linesTokens {
			if firstToken(linesTokens[li]) != "8" {
				continue
			}
			addr := valueRightOfLabel(set.Lines[li], linesTokens[li][0])
			if li+1 < len(set.Lines) {
				next := set.Lines[li+1]
				nextTokens := linesTokens[li+1]
				if next != "" && !newFieldLabels[firstToken(nextTokens)] && looksAddressy(next) {
					if addr == "" {
						addr = strings.TrimSpace(next)
					} else {
						addr = addr + "\n" + strings.TrimSpace(next)
					}
				}
			}
			if strings.TrimSpace(addr) != "" {
				rec.Address = ptrx.String(strings.TrimSpace(addr))
				chosen["address"] = "label 8"
			}
			break
		}
	}

	// Address fallbacks: a comma+postcode line with a small window of
	// preceding address-shaped lines, then any postcode line, then the
	// first street-keyword line.
	if rec.Address == nil {
		for i, l := range set.Lines {
			if !strings.Contains(l, ",") || !ukPostcodeRe.MatchString(stripAccents(strings.ToUpper(l))) {
				continue
			}
			var bucket []string
			start := i - 2
			if start < 0 {
				start = 0
			}
			for k := start; k <= i; k++ {
				part := strings.TrimSpace(set.Lines[k])
				if part == "" {
					continue
				}
				if k < i && !strings.Contains(part, ",") && !streetWordsRe.MatchString(part) {
					continue
				}
				bucket = append(bucket, part)
			}
			if len(bucket) > 0 {
				rec.Address = ptrx.String(strings.Join(bucket, "\n"))
				chosen["address"] = "postcode window"
				break
			}
		}
	}
	if rec.Address == nil {
		idx := -1
		for i, l := range set.Lines {
			if ukPostcodeRe.MatchString(stripAccents(strings.ToUpper(l))) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			start := idx - 3
			if start < 0 {
				start = 0
			}
			rec.Address = ptrx.String(strings.Join(set.Lines[start:idx+1], "\n"))
			chosen["address"] = "postcode line"
		} else {
			for i, l := range set.Lines {
				if streetWordsRe.MatchString(l) {
					start := i - 2
					if start < 0 {
						start = 0
					}
					end := i + 3
					if end > len(set.Lines) {
						end = len(set.Lines)
					}
					rec.Address = ptrx.String(strings.Join(set.Lines[start:end], "\n"))
					chosen["address"] = "street keyword"
					break
				}
			}
		}
	}

	// Issuing authority: known issuer acronyms.
	if rec.IssuingAuthority == nil {
		hasDVLA, hasDVA := false, false
		for _, l := range set.Lines {
			if dvlaRe.MatchString(l) {
				hasDVLA = true
			}
			if dvaRe.MatchString(l) {
				hasDVA = true
			}
		}
		if hasDVLA {
			rec.IssuingAuthority = ptrx.String("DVLA")
		} else if hasDVA {
			rec.IssuingAuthority = ptrx.String("DVA")
		}
	}

	// UK licence family default.
	if rec.IssuingCountry == nil {
		rec.IssuingCountry = ptrx.String("GB")
	}

	// Date-of-birth fallback: scan every date-shaped candidate and take
	// the first whose implied age is humanly plausible, so arbitrary
	// dates on the document are not mistaken for a birth date.
	if rec.DOB == nil {
		var candidates []string
		for _, line := range set.Lines {
			candidates = append(candidates, dateCandidateRe.FindAllString(line, -1)...)
		}
		for _, c := range candidates {
			iso, _ := ExtractDateFromString(c)
			if iso == "" {
				continue
			}
			birth, err := time.Parse("2006-01-02", iso)
			if err != nil {
				continue
			}
			age := ageAt(birth, now)
			if age >= MinPlausibleAge && age <= MaxPlausibleAge {
				rec.DOB = ptrx.String(iso)
				rec.DOBRaw = ptrx.String(iso)
				chosen["dob"] = "age-plausible scan"
				break
			}
		}
	}
}

package docscan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Hand-picked constants carried over from observed real-document
// behavior. Overridable, but changing them changes what the engine
// accepts on real documents.
var (
	// TwoDigitYearPivot decides the century of a two-digit year: values
	// below the pivot become 20xx, values at or above it 19xx.
	TwoDigitYearPivot = 40

	// MinPlausibleAge and MaxPlausibleAge bound the age a date-of-birth
	// candidate may imply before the fallback accepts it.
	MinPlausibleAge = 16
	MaxPlausibleAge = 120
)

// Month-name tables for the two languages UK identity documents carry.
// Keys are matched after uppercasing and diacritic stripping.
var monthsEN = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var monthsFR = map[string]time.Month{
	"JANV": time.January, "FEV": time.February, "FEVR": time.February,
	"MAR": time.March, "MARS": time.March, "AVR": time.April,
	"AVRI": time.April, "MAI": time.May, "JUIN": time.June,
	"JUIL": time.July, "AOUT": time.August, "SEPT": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var (
	isoDateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericDMYRe   = regexp.MustCompile(`^\d{1,2} \d{1,2} \d{2,4}$`)
	dashedDMYRe    = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	dayTokenRe     = regexp.MustCompile(`^\d{1,2}$`)
	dateShapedRe   = regexp.MustCompile(`(\d{1,2}[/\-.\s]\d{1,2}[/\-.\s]\d{2,4}|\d{1,2}\s+[A-Za-zÉÛéû]{3,}\s+\d{2,4}|\d{4}-\d{2}-\d{2})`)
	bilingualRe    = regexp.MustCompile(`(\d{1,2})\s+([A-Z]{3,5})(?:\s*/\s*[A-Z]{3,5})?\s+(\d{2,4})`)
	datePunctRe    = regexp.MustCompile(`[.,/\-]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

func trimSpace(s string) string { return strings.TrimSpace(s) }

func resolveTwoDigitYear(y int) int {
	if y >= TwoDigitYearPivot {
		return 1900 + y
	}
	return 2000 + y
}

// isValidYMD reports whether the components form a real calendar date,
// via a time.Date round-trip (rejects day 31 in April and the like).
func isValidYMD(y int, m time.Month, d int) bool {
	if m < time.January || m > time.December || d < 1 || d > 31 {
		return false
	}
	dt := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return dt.Year() == y && dt.Month() == m && dt.Day() == d
}

func formatISO(y int, m time.Month, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func lookupMonth(token string) (time.Month, bool) {
	if m, ok := monthsEN[token]; ok {
		return m, true
	}
	if m, ok := monthsFR[token]; ok {
		return m, true
	}
	return 0, false
}

// NormalizeDate converts a raw date token into an ISO calendar date.
// It returns the empty string (and the best-effort cleaned raw text)
// when no valid date can be recovered — never a malformed or impossible
// date. The function is total: any input is safe.
//
// Accepted shapes, tried in order: ISO YYYY-MM-DD, numeric D M Y with a
// two-digit-year pivot, D <MONTH> Y with English or French month names
// (bilingual duplicates like "JUL / JUIL" collapse first), and dashed
// DD-MM-YYYY.
func NormalizeDate(raw string) (iso string, rawCleaned string) {
	if raw == "" {
		return "", ""
	}

	cleaned := whitespaceRe.ReplaceAllString(datePunctRe.ReplaceAllString(raw, " "), " ")
	cleaned = strings.TrimSpace(cleaned)
	upper := stripAccents(strings.ToUpper(cleaned))

	tokens := strings.Fields(upper)
	// Collapse immediately-repeated tokens (bilingual duplicate month
	// abbreviations such as "JUL JUIL" after slash stripping).
	deduped := tokens[:0:0]
	for i, t := range tokens {
		if i > 0 && t == tokens[i-1] {
			continue
		}
		deduped = append(deduped, t)
	}
	tokens = deduped

	if isoDateRe.MatchString(raw) {
		parts := strings.Split(raw, "-")
		y, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		d, _ := strconv.Atoi(parts[2])
		if isValidYMD(y, time.Month(m), d) {
			return formatISO(y, time.Month(m), d), raw
		}
	}

	if numericDMYRe.MatchString(strings.Join(tokens, " ")) {
		d, _ := strconv.Atoi(tokens[0])
		m, _ := strconv.Atoi(tokens[1])
		y, _ := strconv.Atoi(tokens[2])
		if y < 100 {
			y = resolveTwoDigitYear(y)
		}
		if isValidYMD(y, time.Month(m), d) {
			return formatISO(y, time.Month(m), d), cleaned
		}
	}

	if len(tokens) >= 3 && dayTokenRe.MatchString(tokens[0]) {
		if month, ok := lookupMonth(tokens[1]); ok {
			d, _ := strconv.Atoi(tokens[0])
			y, err := strconv.Atoi(tokens[2])
			if err == nil {
				if y < 100 {
					y = resolveTwoDigitYear(y)
				}
				if isValidYMD(y, month, d) {
					return formatISO(y, month, d), cleaned
				}
			}
		}
	}

	dashed := strings.ReplaceAll(raw, "/", "-")
	if dashedDMYRe.MatchString(dashed) {
		parts := strings.Split(dashed, "-")
		d, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		y, _ := strconv.Atoi(parts[2])
		if isValidYMD(y, time.Month(m), d) {
			return formatISO(y, time.Month(m), d), raw
		}
	}

	if cleaned == "" {
		return "", raw
	}
	return "", cleaned
}

// parseBilingualDate picks a date out of a line that may carry a
// bilingual month fragment, e.g. "08 JUL / JUIL 28" or "03 JAN / JAN 82",
// as printed in the date fields of UK passports.
func parseBilingualDate(line string) string {
	u := stripAccents(strings.ToUpper(line))
	m := bilingualRe.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	d, _ := strconv.Atoi(m[1])
	month, ok := lookupMonth(m[2])
	if !ok {
		return ""
	}
	y, _ := strconv.Atoi(m[3])
	if y < 100 {
		y = resolveTwoDigitYear(y)
	}
	if !isValidYMD(y, month, d) {
		return ""
	}
	return formatISO(y, month, d)
}

// ExtractDateFromString normalizes s directly, then scans it for any
// date-shaped substring and normalizes the match, then falls back to the
// bilingual picker. Returns the ISO date (or "") and the raw text that
// produced it, kept for audit.
func ExtractDateFromString(s string) (iso string, raw string) {
	if first, _ := NormalizeDate(s); first != "" {
		return first, s
	}
	if m := dateShapedRe.FindString(s); m != "" {
		if iso, _ := NormalizeDate(m); iso != "" {
			return iso, m
		}
		// fall through: a date-shaped match that fails validation is
		// not the date we want
	}
	return parseBilingualDate(s), s
}

// ageAt returns the age in whole years implied by a birth date at now.
func ageAt(birth time.Time, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

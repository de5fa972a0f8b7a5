package docscan

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/WunderSocial/wunder-id/pkg/ptrx"
)

// Fixed character offsets of the TD3 machine-readable zone: issuing
// country on line 1, document number and YYMMDD date of birth on line 2.
const (
	mrzMinLineLen      = 30
	mrzCountryStart    = 2
	mrzCountryEnd      = 5
	mrzNumberEnd       = 9
	mrzBirthYearStart  = 13
	mrzBirthMonthStart = 15
	mrzBirthDayStart   = 17
	mrzBirthEnd        = 19
)

var (
	mrzSentinelRe    = regexp.MustCompile(`^P<`)
	mrzFillerRe      = regexp.MustCompile(`[\s<]+`)
	nonAlphaRe       = regexp.MustCompile(`[^A-Z]`)
	nonAlnumRe       = regexp.MustCompile(`[^A-Z0-9]`)
	nineDigitsRe     = regexp.MustCompile(`\b(\d{9})\b`)
	alnumIDRe        = regexp.MustCompile(`\b[A-Z0-9]{8,10}\b`)
	digitRe          = regexp.MustCompile(`\d`)
	passportNoRe     = regexp.MustCompile(`PASSPORT\s*NO|PASSEPORT\s*N`)
	authorityRe      = regexp.MustCompile(`AUTHORITY|AUTORITE`)
	expiryLabelRe    = regexp.MustCompile(`DATE\s+OF\s+EXPIRY|EXPIRY|EXPIRES|EXPIRATION|D'?EXPIRATION`)
	birthLabelRe     = regexp.MustCompile(`DATE OF BIRTH|NAISSANCE`)
	countryLabelRe   = regexp.MustCompile(`CODE|NATIONALITY|NATIONALITE`)
	gbrRe            = regexp.MustCompile(`\bGBR\b`)
	hmpoRe           = regexp.MustCompile(`\bHMPO\b`)
	threeLetterRe    = regexp.MustCompile(`\b([A-Z]{3})\b`)
	twoDigitsTokenRe = regexp.MustCompile(`^\d{2}$`)
)

// Passport words are never a document number, whatever their shape.
var passportWords = map[string]bool{"PASSPORT": true, "PASSEPORT": true}

// mrzData is what a TD3 MRZ yields at fixed offsets.
type mrzData struct {
	issuingCountry string
	number         string
	birthISO       string
}

// parseMRZ scans lines for the passport MRZ sentinel ("P<", at least 30
// characters once filler runs collapse) and decodes the fixed offsets
// from that line and its successor.
func parseMRZ(lines []string) mrzData {
	collapsed := make([]string, len(lines))
	for i, l := range lines {
		collapsed[i] = strings.ToUpper(mrzFillerRe.ReplaceAllString(l, "<"))
	}

	for i, l1 := range collapsed {
		if !mrzSentinelRe.MatchString(l1) || len(l1) < mrzMinLineLen {
			continue
		}
		var l2 string
		if i+1 < len(collapsed) {
			l2 = collapsed[i+1]
		}

		var d mrzData
		if len(l1) >= mrzCountryEnd {
			d.issuingCountry = nonAlphaRe.ReplaceAllString(l1[mrzCountryStart:mrzCountryEnd], "")
		}
		if len(l2) >= mrzNumberEnd {
			d.number = nonAlnumRe.ReplaceAllString(l2[:mrzNumberEnd], "")
		}
		if len(l2) >= mrzBirthEnd {
			yy := l2[mrzBirthYearStart:mrzBirthMonthStart]
			mm := l2[mrzBirthMonthStart:mrzBirthDayStart]
			dd := l2[mrzBirthDayStart:mrzBirthEnd]
			if twoDigitsTokenRe.MatchString(yy) && twoDigitsTokenRe.MatchString(mm) && twoDigitsTokenRe.MatchString(dd) {
				y, _ := strconv.Atoi(yy)
				m, _ := strconv.Atoi(mm)
				day, _ := strconv.Atoi(dd)
				year := resolveTwoDigitYear(y)
				if isValidYMD(year, time.Month(m), day) {
					d.birthISO = formatISO(year, time.Month(m), day)
				}
			}
		}
		return d
	}
	return mrzData{}
}

func findNineDigits(s string) string {
	if m := nineDigitsRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// findAlnumID returns the first 8-10 character alphanumeric token with
// at least two digits that is not a passport word.
func findAlnumID(s string) string {
	for _, c := range alnumIDRe.FindAllString(s, -1) {
		if passportWords[c] {
			continue
		}
		if len(digitRe.FindAllString(c, -1)) >= 2 {
			return c
		}
	}
	return ""
}

// extractPassportFields fills the passport-shaped subset of rec from the
// block set. Every step is skipped when the field already has a value
// from a higher-priority source; the MRZ path runs first so MRZ-derived
// values win over label-anchored ones. A miss in any step leaves the
// field nil.
func extractPassportFields(set BlockSet, rec *Record, chosen map[string]string) {
	uLines := make([]string, len(set.Lines))
	for i, l := range set.Lines {
		uLines[i] = stripAccents(strings.ToUpper(l))
	}

	if rec.DocumentID == nil || rec.DOB == nil || rec.IssuingCountry == nil {
		mrz := parseMRZ(set.Lines)
		if rec.DocumentID == nil && mrz.number != "" {
			rec.DocumentID = ptrx.String(mrz.number)
			chosen["documentId"] = "mrz"
		}
		if rec.DOB == nil && mrz.birthISO != "" {
			rec.DOB = ptrx.String(mrz.birthISO)
			rec.DOBRaw = ptrx.String(mrz.birthISO)
			chosen["dob"] = "mrz"
		}
		if rec.IssuingCountry == nil && mrz.issuingCountry != "" {
			rec.IssuingCountry = ptrx.String(mrz.issuingCountry)
			chosen["issuingCountry"] = "mrz"
		}
	}

	// Document number near a "passport number" label, then anywhere.
	if rec.DocumentID == nil {
		for i, u := range uLines {
			if !passportNoRe.MatchString(u) {
				continue
			}
			win := strings.Join(window(set.Lines, i, 3), " ")
			id := findNineDigits(win)
			if id == "" {
				id = findAlnumID(stripAccents(strings.ToUpper(win)))
			}
			if id != "" {
				rec.DocumentID = ptrx.String(id)
				chosen["documentId"] = "passport number label"
			}
			break
		}
	}
	if rec.DocumentID == nil {
		all := strings.Join(set.Lines, " ")
		id := findNineDigits(all)
		if id == "" {
			id = findAlnumID(stripAccents(strings.ToUpper(all)))
		}
		if id != "" {
			rec.DocumentID = ptrx.String(id)
			chosen["documentId"] = "corpus scan"
		}
	}

	if rec.IssuingAuthority == nil {
		for i, u := range uLines {
			if hmpoRe.MatchString(u) {
				rec.IssuingAuthority = ptrx.String("HMPO")
				break
			}
			if authorityRe.MatchString(u) {
				rec.IssuingAuthority = ptrx.String(set.Lines[i])
				break
			}
		}
	}

	if rec.IssuingCountry == nil {
		for _, u := range uLines {
			if gbrRe.MatchString(u) {
				rec.IssuingCountry = ptrx.String("GBR")
				break
			}
		}
	}
	if rec.IssuingCountry == nil {
		for i, u := range uLines {
			if !countryLabelRe.MatchString(u) {
				continue
			}
			pool := strings.Join(window(uLines, i, 2), " ")
			if m := threeLetterRe.FindStringSubmatch(pool); m != nil {
				rec.IssuingCountry = ptrx.String(m[1])
				break
			}
		}
	}

	if rec.Expiry == nil {
		for i, u := range uLines {
			if !expiryLabelRe.MatchString(u) {
				continue
			}
			look := strings.Join(window(set.Lines, i, 2), " ")
			iso := parseBilingualDate(look)
			if iso == "" {
				iso, _ = ExtractDateFromString(look)
			}
			if iso != "" {
				rec.Expiry = ptrx.String(iso)
				chosen["expiry"] = "expiry label"
				break
			}
		}
	}

	if rec.DOB == nil {
		for i, u := range uLines {
			if !birthLabelRe.MatchString(u) {
				continue
			}
			look := strings.Join(window(set.Lines, i, 2), " ")
			if iso, raw := ExtractDateFromString(look); iso != "" {
				rec.DOB = ptrx.String(iso)
				rec.DOBRaw = ptrx.String(raw)
				chosen["dob"] = "birth label"
				break
			}
		}
	}

	rec.deriveFullName()
}

// window returns up to n lines starting at i.
func window(lines []string, i, n int) []string {
	end := i + n
	if end > len(lines) {
		end = len(lines)
	}
	return lines[i:end]
}

package docscan_test

import (
	"testing"
	"time"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func licenceLines() []string {
	return []string{
		"UK DRIVING LICENCE",
		"1. MORGAN",
		"2. SARAH MEREDYTH",
		"3. 11.03.1976",
		"4a. 19.01.2021 4c. DVLA",
		"4b. 18.01.2031",
		"5. MORGA753116J99FG",
		"8. 122 BURNS CRESCENT, EDINBURGH, EH1 9GP",
	}
}

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestAssembleLicence(t *testing.T) {
	set := docscan.BlockSet{Lines: licenceLines()}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)

	if rec.DocumentType != docscan.DocumentTypeLicense {
		t.Fatalf("documentType = %q, want license", rec.DocumentType)
	}
	if got := str(rec.DocumentID); got != "MORGA753116J99FG" {
		t.Fatalf("documentId = %q", got)
	}
	if got := str(rec.Expiry); got != "2031-01-18" {
		t.Fatalf("expiry = %q", got)
	}
	if got := str(rec.ValidFrom); got != "2021-01-19" {
		t.Fatalf("validFrom = %q", got)
	}
	if got := str(rec.IssuingAuthority); got != "DVLA" {
		t.Fatalf("issuingAuthority = %q", got)
	}
	if got := str(rec.IssuingCountry); got != "GB" {
		t.Fatalf("issuingCountry = %q", got)
	}
	if got := str(rec.Address); got != "122 BURNS CRESCENT, EDINBURGH, EH1 9GP" {
		t.Fatalf("address = %q", got)
	}
	if got := str(rec.DOB); got != "1976-03-11" {
		t.Fatalf("dob = %q", got)
	}
}

func TestLicenceNumberOCRCorrection(t *testing.T) {
	// I misread for 1 in the numeric section; the 5-letter head must
	// survive untouched.
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"5. MORGA7531I6J99FG",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if got := str(rec.DocumentID); got != "MORGA753116J99FG" {
		t.Fatalf("documentId = %q, want corrected number", got)
	}
}

func TestLicenceNumberFromCorpusScan(t *testing.T) {
	// No field-5 label anywhere; the number sits unlabelled in a line.
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"xx MARGA753116J99FG",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if got := str(rec.DocumentID); got != "MARGA753116J99FG" {
		t.Fatalf("documentId = %q", got)
	}
}

func TestLicenceNumberRejectsMalformed(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"5. SHORT123",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if rec.DocumentID != nil {
		t.Fatalf("documentId = %q, want nil", *rec.DocumentID)
	}
}

func TestLicenceValidFromTextLabel(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"VALID FROM",
		"19.01.2021",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if got := str(rec.ValidFrom); got != "2021-01-19" {
		t.Fatalf("validFrom = %q", got)
	}
}

func TestLicenceAddressPostcodeFallback(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"122 BURNS CRESCENT, EDINBURGH, EH1 9GP",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if got := str(rec.Address); got != "122 BURNS CRESCENT, EDINBURGH, EH1 9GP" {
		t.Fatalf("address = %q", got)
	}
}

func TestLicenceDOBAgePlausibility(t *testing.T) {
	// Two date-shaped lines, implying ages 140 and 30; the scan must
	// skip the implausible one and a recent issue date alike.
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"01.01.1886",
		"19.01.2021",
		"11.03.1996",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if got := str(rec.DOB); got != "1996-03-11" {
		t.Fatalf("dob = %q", got)
	}
}

func TestLicenceDOBRejectsAncientDate(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{
		"DRIVING LICENCE",
		"01.01.1880",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeLicense, testNow)
	if rec.DOB != nil {
		t.Fatalf("dob = %q, want nil for a 146-year-old", *rec.DOB)
	}
}

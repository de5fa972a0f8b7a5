package docscan_test

import (
	"testing"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

func passportLines() []string {
	return []string{
		"PASSPORT",
		"UNITED KINGDOM OF GREAT BRITAIN AND NORTHERN IRELAND",
		"Date of birth / Date de naissance 03 JAN / JAN 82",
		"Date of expiry / Date d'expiration 08 JUL / JUIL 28",
		"Authority HMPO",
		"P<GBRMORGAN<<SARAH<MEREDYTH<JANE<ELIZABETH<<<<<<",
		"5334755TS7GBR8201033F2807081<<<<<<<<<<<<<<04",
	}
}

func TestAssemblePassportMRZ(t *testing.T) {
	set := docscan.BlockSet{Lines: passportLines()}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)

	if rec.DocumentType != docscan.DocumentTypePassport {
		t.Fatalf("documentType = %q, want passport", rec.DocumentType)
	}
	if got := str(rec.DocumentID); got != "5334755TS" {
		t.Fatalf("documentId = %q", got)
	}
	if got := str(rec.DOB); got != "1982-01-03" {
		t.Fatalf("dob = %q", got)
	}
	if got := str(rec.IssuingCountry); got != "GBR" {
		t.Fatalf("issuingCountry = %q", got)
	}
	if got := str(rec.Expiry); got != "2028-07-08" {
		t.Fatalf("expiry = %q", got)
	}
	if got := str(rec.IssuingAuthority); got != "HMPO" {
		t.Fatalf("issuingAuthority = %q", got)
	}
}

func TestPassportLabelFallbacksWithoutMRZ(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{
		"PASSPORT",
		"Passport No. 533475579",
		"Date of birth 03 JAN / JAN 82",
		"Date of expiry 08 JUL / JUIL 28",
		"GBR",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)

	if got := str(rec.DocumentID); got != "533475579" {
		t.Fatalf("documentId = %q", got)
	}
	if got := str(rec.DOB); got != "1982-01-03" {
		t.Fatalf("dob = %q", got)
	}
	if got := str(rec.Expiry); got != "2028-07-08" {
		t.Fatalf("expiry = %q", got)
	}
	if got := str(rec.IssuingCountry); got != "GBR" {
		t.Fatalf("issuingCountry = %q", got)
	}
}

func TestPassportAlnumDocumentID(t *testing.T) {
	// No nine-digit number anywhere; an alphanumeric id with two or
	// more digits qualifies, the PASSPORT word itself never does.
	set := docscan.BlockSet{Lines: []string{
		"PASSPORT",
		"Passport No. AB1234CD",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	if got := str(rec.DocumentID); got != "AB1234CD" {
		t.Fatalf("documentId = %q", got)
	}
}

func TestMRZWinsOverLabelledDate(t *testing.T) {
	// A printed birth date disagrees with the MRZ; the MRZ wins.
	set := docscan.BlockSet{Lines: []string{
		"PASSPORT",
		"Date of birth 11 MAR 76",
		"P<GBRMORGAN<<SARAH<MEREDYTH<JANE<ELIZABETH<<<<<<",
		"5334755TS7GBR8201033F2807081<<<<<<<<<<<<<<04",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	if got := str(rec.DOB); got != "1982-01-03" {
		t.Fatalf("dob = %q, want the MRZ date", got)
	}
}

func TestQueryAnswerWinsOverMRZ(t *testing.T) {
	set := docscan.BlockSet{
		Lines: passportLines(),
		Answers: docscan.Answers{
			DOB: "11.03.1976",
		},
	}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	if got := str(rec.DOB); got != "1976-03-11" {
		t.Fatalf("dob = %q, want the query answer", got)
	}
}

func TestImplausibleDocumentIDAnswerIgnored(t *testing.T) {
	// A junk answer must not block the MRZ fallback.
	set := docscan.BlockSet{
		Lines:   passportLines(),
		Answers: docscan.Answers{DocumentID: "N/A"},
	}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	if got := str(rec.DocumentID); got != "5334755TS" {
		t.Fatalf("documentId = %q, want the MRZ number", got)
	}
}

package docscan_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

func TestAssembleIsIdempotent(t *testing.T) {
	set := docscan.BlockSet{
		Lines:   licenceLines(),
		Words:   []string{"MORGAN", "DVLA"},
		Answers: docscan.Answers{Surname: "MORGAN"},
	}
	a := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	b := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)

	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	jb, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(ja) != string(jb) {
		t.Fatalf("records differ across runs:\n%s\n%s", ja, jb)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("records differ structurally across runs")
	}
}

func TestAssembleEmptySet(t *testing.T) {
	rec := docscan.Assemble(docscan.BlockSet{}, docscan.DocumentTypeUnknown, testNow)
	if rec.DocumentType != docscan.DocumentTypeUnknown {
		t.Fatalf("documentType = %q, want unknown", rec.DocumentType)
	}
	if rec.DocumentID != nil || rec.DOB != nil || rec.Expiry != nil ||
		rec.ValidFrom != nil || rec.Address != nil || rec.FullName != nil {
		t.Fatal("empty set must yield an empty record")
	}
}

func TestAssembleGarbageNeverPanics(t *testing.T) {
	sets := []docscan.BlockSet{
		{Lines: []string{"", "   ", "<<<<", "P<"}},
		{Lines: []string{"5.", "4b.", "8."}},
		{Lines: []string{"\x00", "99 99 99 99"}},
	}
	for _, set := range sets {
		for _, hint := range []docscan.DocumentType{
			docscan.DocumentTypeUnknown, docscan.DocumentTypePassport, docscan.DocumentTypeLicense,
		} {
			docscan.Assemble(set, hint, testNow)
		}
	}
}

func TestAssembleFullName(t *testing.T) {
	set := docscan.BlockSet{Answers: docscan.Answers{
		Surname:        "MORGAN",
		FirstWithTitle: "MRS SARAH MEREDYTH",
	}}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	if got := str(rec.FullName); got != "MRS SARAH MEREDYTH MORGAN" {
		t.Fatalf("fullName = %q", got)
	}
}

func TestAssembleCountryAnswer(t *testing.T) {
	set := docscan.BlockSet{Answers: docscan.Answers{IssuingCountry: "United Kingdom"}}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	if got := str(rec.IssuingCountry); got != "GB" {
		t.Fatalf("issuingCountry = %q", got)
	}
	if got := str(rec.IssuingCountryRaw); got != "United Kingdom" {
		t.Fatalf("issuingCountryRaw = %q", got)
	}
}

func TestAssembleDiagnostics(t *testing.T) {
	set := docscan.BlockSet{
		Lines: licenceLines(),
		Words: []string{"MORGAN", "DVLA", "EH1"},
		Calls: []docscan.CallMeta{{Kind: "license", Queries: 9}},
	}
	rec := docscan.Assemble(set, docscan.DocumentTypeUnknown, testNow)
	d := rec.Diagnostics
	if d == nil {
		t.Fatal("diagnostics missing")
	}
	if d.WordCount != 3 {
		t.Fatalf("wordCount = %d", d.WordCount)
	}
	if len(d.LineSample) != len(licenceLines()) {
		t.Fatalf("lineSample = %d lines", len(d.LineSample))
	}
	if len(d.Calls) != 1 || d.Calls[0].Kind != "license" {
		t.Fatalf("calls = %+v", d.Calls)
	}
	if d.ChosenFallbacks["documentId"] == "" {
		t.Fatal("chosenFallbacks missing documentId")
	}
}

func TestExtractValidation(t *testing.T) {
	engine := docscan.NewEngine(docscan.NewCollector(nil, nil, false))
	if _, err := engine.Extract(context.Background(), "doc.jpg", docscan.DocumentTypeUnknown); err == nil {
		t.Fatal("expected error for missing analyzer")
	}

	engine = docscan.NewEngine(docscan.NewCollector(&fakeAnalyzer{}, nil, false))
	if _, err := engine.Extract(context.Background(), "   ", docscan.DocumentTypeUnknown); err == nil {
		t.Fatal("expected error for empty document key")
	}
}

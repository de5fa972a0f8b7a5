package docscan_test

import (
	"testing"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

func TestClassifyHintWins(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{"PASSPORT"}}
	if got := docscan.Classify(set, docscan.DocumentTypeLicense); got != docscan.DocumentTypeLicense {
		t.Fatalf("Classify with licence hint = %q", got)
	}
}

func TestClassifyLicenceSignals(t *testing.T) {
	cases := []docscan.BlockSet{
		{Lines: []string{"4b. 18.01.2031"}},
		{Lines: []string{"DRIVING LICENCE"}},
		{Answers: docscan.Answers{ValidFrom: "19.01.2021"}},
		{Lines: []string{"122 BURNS CRESCENT, EH1 9GP"}},
	}
	for i, set := range cases {
		if got := docscan.Classify(set, docscan.DocumentTypeUnknown); got != docscan.DocumentTypeLicense {
			t.Fatalf("case %d: Classify = %q, want license", i, got)
		}
	}
}

func TestClassifyPassportKeyword(t *testing.T) {
	for _, word := range []string{"PASSPORT", "PASSEPORT"} {
		set := docscan.BlockSet{Lines: []string{word}}
		if got := docscan.Classify(set, docscan.DocumentTypeUnknown); got != docscan.DocumentTypePassport {
			t.Fatalf("Classify(%q) = %q, want passport", word, got)
		}
	}
}

func TestClassifyLicenceBeatsPassportWord(t *testing.T) {
	// Licence layouts sometimes mention other document names; layout
	// signals take precedence over keywords.
	set := docscan.BlockSet{Lines: []string{"4b. 18.01.2031", "PASSPORT OFFICE"}}
	if got := docscan.Classify(set, docscan.DocumentTypeUnknown); got != docscan.DocumentTypeLicense {
		t.Fatalf("Classify = %q, want license", got)
	}
}

func TestClassifyUnknown(t *testing.T) {
	set := docscan.BlockSet{Lines: []string{"hello", "world"}}
	if got := docscan.Classify(set, docscan.DocumentTypeUnknown); got != docscan.DocumentTypeUnknown {
		t.Fatalf("Classify = %q, want unknown", got)
	}
}

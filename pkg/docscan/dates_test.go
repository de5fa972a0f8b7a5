package docscan_test

import (
	"testing"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1982-01-03", "1982-01-03"},
		{"05.06.2022", "2022-06-05"},
		{"05/06/2022", "2022-06-05"},
		{"05-06-22", "2022-06-05"},
		{"05-06-75", "1975-06-05"},
		{"3 1 2020", "2020-01-03"},
		{"08 JUL 28", "2028-07-08"},
		{"03 JAN / JAN 82", "1982-01-03"},
		{"15 AOÛT 1999", "1999-08-15"},
		{"12 MARS 05", "2005-03-12"},
		{"2022-02-30", ""},
		{"31 04 2020", ""},
		{"99 99 9999", ""},
		{"not a date", ""},
		{"", ""},
	}
	for _, c := range cases {
		got, _ := docscan.NormalizeDate(c.in)
		if got != c.want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeDateTwoDigitYearPivot(t *testing.T) {
	// 39 is below the pivot, 40 at it.
	if got, _ := docscan.NormalizeDate("01-01-39"); got != "2039-01-01" {
		t.Fatalf("year 39 = %q, want 2039-01-01", got)
	}
	if got, _ := docscan.NormalizeDate("01-01-40"); got != "1940-01-01" {
		t.Fatalf("year 40 = %q, want 1940-01-01", got)
	}
}

func TestExtractDateFromString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4b. 05.06.2032", "2032-06-05"},
		{"Date of expiry / Date d'expiration 08 JUL / JUIL 28", "2028-07-08"},
		{"DATE OF BIRTH 03 JAN / JAN 82", "1982-01-03"},
		{"issued 2020-05-17 by DVLA", "2020-05-17"},
		{"no dates here", ""},
	}
	for _, c := range cases {
		got, _ := docscan.ExtractDateFromString(c.in)
		if got != c.want {
			t.Fatalf("ExtractDateFromString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractDateFromStringKeepsRaw(t *testing.T) {
	iso, raw := docscan.ExtractDateFromString("3. 05.06.1975")
	if iso != "1975-06-05" {
		t.Fatalf("iso = %q, want 1975-06-05", iso)
	}
	if raw != "05.06.1975" {
		t.Fatalf("raw = %q, want the matched fragment", raw)
	}
}

func TestNormalizeDateNeverPanics(t *testing.T) {
	inputs := []string{
		"----", "....", "// // //", "JAN JAN JAN", "0 0 0",
		"99999999-99-99", "\x00\x01", "日本語", "1 2", "1 2 3 4 5 6 7",
	}
	for _, in := range inputs {
		if iso, _ := docscan.NormalizeDate(in); iso != "" {
			t.Fatalf("NormalizeDate(%q) = %q, want empty", in, iso)
		}
		docscan.ExtractDateFromString(in)
	}
}

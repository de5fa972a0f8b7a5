package docscan

import (
	"regexp"
	"strings"
)

// UK address hints.
var (
	ukPostcodeRe  = regexp.MustCompile(`\b([A-Z]{1,2}\d[A-Z\d]?)\s?(\d[A-Z]{2})\b`)
	streetWordsRe = regexp.MustCompile(`(?i)\b(ROAD|RD|STREET|ST|AVENUE|AVE|LANE|LN|CLOSE|WAY|DRIVE|DR|COURT|CT|PLACE|PL|GARDENS|GDNS|SQUARE|SQ|TERRACE|TCE)\b`)
)

var labelTrimRe = regexp.MustCompile(`[.)]`)

// toTokens uppercases and splits a line into whitespace-separated tokens.
func toTokens(s string) []string {
	return strings.Fields(strings.ToUpper(s))
}

// tokenizeLines tokenizes every line once for label-anchored searches.
func tokenizeLines(lines []string) [][]string {
	out := make([][]string, len(lines))
	for i, l := range lines {
		out[i] = toTokens(l)
	}
	return out
}

// findLabelIndex returns the index of the token equal to label after
// stripping trailing punctuation ("4b." and "4B)" both match "4B"),
// or -1.
func findLabelIndex(tokens []string, label string) int {
	lab := strings.ToUpper(label)
	for i, t := range tokens {
		if labelTrimRe.ReplaceAllString(t, "") == lab {
			return i
		}
	}
	return -1
}

// firstToken returns the first token of a line with trailing punctuation
// stripped, or "".
func firstToken(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return labelTrimRe.ReplaceAllString(tokens[0], "")
}

// looksAddressy reports whether a line is shaped like a UK address line:
// a comma, a postcode, or a street-type keyword.
func looksAddressy(s string) bool {
	return strings.Contains(s, ",") ||
		ukPostcodeRe.MatchString(stripAccents(strings.ToUpper(s))) ||
		streetWordsRe.MatchString(s)
}

// valueRightOfLabel returns the text after the first occurrence of
// labelToken in line, with leading separators trimmed.
func valueRightOfLabel(line, labelToken string) string {
	pos := strings.Index(strings.ToUpper(line), labelToken)
	if pos < 0 {
		return ""
	}
	rest := line[pos+len(labelToken):]
	return strings.TrimSpace(strings.TrimLeft(rest, ":.)- \t"))
}

package docscan

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/WunderSocial/wunder-id/pkg/logx"
	"github.com/WunderSocial/wunder-id/pkg/ptrx"
)

// lineSampleCap bounds the number of lines copied into diagnostics.
const lineSampleCap = 80

var alnumOnlyRe = regexp.MustCompile(`[^A-Za-z0-9]`)

// Engine runs one extraction end to end: collect provider output,
// classify, assemble the record.
type Engine struct {
	collector *Collector
	now       func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the engine's notion of the current time. Age
// plausibility checks use it; production code never needs this.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an extraction engine around a collector.
func NewEngine(collector *Collector, opts ...EngineOption) *Engine {
	e := &Engine{collector: collector, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract analyzes the document at docKey and returns its identity
// record. hint, when not unknown, selects the query set and wins
// classification outright. The only fatal failures are a missing
// analyzer, an empty key and a failed query-analysis call; every
// heuristic miss just leaves its field nil.
func (e *Engine) Extract(ctx context.Context, docKey string, hint DocumentType) (*Record, error) {
	if e.collector == nil || e.collector.analyzer == nil {
		return nil, registry.New(ErrMissingAnalyzer)
	}
	if strings.TrimSpace(docKey) == "" {
		return nil, registry.New(ErrMissingDocKey)
	}

	set, err := e.collector.Collect(ctx, docKey, hint)
	if err != nil {
		return nil, err
	}

	rec := Assemble(set, hint, e.now())
	logx.WithFields(logx.Fields{
		"docKey":       docKey,
		"documentType": rec.DocumentType,
		"lines":        len(set.Lines),
	}).Info("document extraction complete")
	return rec, nil
}

// Assemble builds a record from an already-collected block set. It is a
// pure function of its arguments: same set, hint and clock always yield
// the same record, and it never panics on garbage input.
//
// Precedence per field: direct query answer (after a sanity check),
// then MRZ, then label-anchored heuristics, then corpus-wide scans.
func Assemble(set BlockSet, hint DocumentType, now time.Time) *Record {
	rec := &Record{DocumentType: DocumentTypeUnknown}
	chosen := make(map[string]string)

	applyAnswers(set.Answers, rec, chosen)

	rec.DocumentType = Classify(set, hint)

	if treatAsPassport(rec.DocumentType, set.Lines) {
		extractPassportFields(set, rec, chosen)
	}
	if treatAsLicence(rec.DocumentType, set) {
		extractLicenceFields(set, rec, chosen, now)
	}

	rec.deriveFullName()

	sample := set.Lines
	if len(sample) > lineSampleCap {
		sample = sample[:lineSampleCap]
	}
	rec.Diagnostics = &Diagnostics{
		DumpPath:        set.DumpPath,
		BlockTypeCounts: set.BlockTypeCounts,
		WordCount:       len(set.Words),
		LineSample:      sample,
		QueryAnswers:    set.Answers,
		Calls:           set.Calls,
		ChosenFallbacks: chosen,
	}
	return rec
}

// applyAnswers maps direct query answers onto the record. Answers are
// the highest-priority source but still get sanity-checked: a document
// number must survive cleaning with at least 8 alphanumerics, and dates
// must normalize to real calendar dates.
func applyAnswers(a Answers, rec *Record, chosen map[string]string) {
	if a.DocumentID != "" {
		cleaned := alnumOnlyRe.ReplaceAllString(a.DocumentID, "")
		if len(cleaned) >= 8 {
			rec.DocumentID = ptrx.String(strings.ToUpper(cleaned))
			chosen["documentId"] = "query"
		}
	}
	if a.DOB != "" {
		iso, raw := ExtractDateFromString(a.DOB)
		if iso != "" {
			rec.DOB = ptrx.String(iso)
			chosen["dob"] = "query"
		}
		// The raw answer is kept for audit even when it fails to
		// normalize.
		rec.DOBRaw = ptrx.StringOrNil(raw)
	}
	if a.ValidFrom != "" {
		if iso, _ := NormalizeDate(a.ValidFrom); iso != "" {
			rec.ValidFrom = ptrx.String(iso)
			chosen["validFrom"] = "query"
		}
	}
	if a.Expiry != "" {
		if iso, _ := ExtractDateFromString(a.Expiry); iso != "" {
			rec.Expiry = ptrx.String(iso)
			chosen["expiry"] = "query"
		}
	}
	if a.IssuingCountry != "" {
		if code, raw := normalizeCountry(a.IssuingCountry); code != "" {
			rec.IssuingCountry = ptrx.String(code)
			rec.IssuingCountryRaw = ptrx.String(raw)
			chosen["issuingCountry"] = "query"
		} else if raw != "" {
			rec.IssuingCountryRaw = ptrx.String(raw)
		}
	}
	if a.IssuingAuthority != "" {
		rec.IssuingAuthority = ptrx.String(strings.TrimSpace(a.IssuingAuthority))
	}
	if a.Surname != "" {
		rec.Surname = ptrx.String(strings.TrimSpace(a.Surname))
	}
	if a.FirstWithTitle != "" {
		rec.FirstWithTitle = ptrx.String(strings.TrimSpace(a.FirstWithTitle))
	}
	if a.Address != "" {
		rec.Address = ptrx.String(strings.TrimSpace(a.Address))
		chosen["address"] = "query"
	}
}

// treatAsPassport lets the passport extractor run when the document was
// classified as a passport, or when the type is still unresolved but the
// corpus carries the passport keyword.
func treatAsPassport(dt DocumentType, lines []string) bool {
	return dt == DocumentTypePassport ||
		(dt == DocumentTypeUnknown && looksLikePassport(lines))
}

// treatAsLicence is the licence counterpart. On an unresolved document
// with both signal kinds present, both extractors run; field-level
// precedence keeps them from fighting.
func treatAsLicence(dt DocumentType, set BlockSet) bool {
	return dt == DocumentTypeLicense ||
		(dt == DocumentTypeUnknown && looksLikeLicence(set))
}

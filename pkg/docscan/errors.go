package docscan

import "github.com/WunderSocial/wunder-id/pkg/errx"

var registry = errx.NewRegistry("DOCSCAN")

var (
	// ErrAnalyzeFailed is returned when the primary query-analysis call
	// fails; the run cannot proceed without it.
	ErrAnalyzeFailed = registry.Register("ANALYZE_FAILED", errx.TypeExternal, 502,
		"document analysis call failed")

	// ErrMissingAnalyzer is returned when the engine is constructed
	// without a provider.
	ErrMissingAnalyzer = registry.Register("MISSING_ANALYZER", errx.TypeValidation, 400,
		"no document analyzer configured")

	// ErrMissingDocKey is returned when the document key is empty.
	ErrMissingDocKey = registry.Register("MISSING_DOC_KEY", errx.TypeValidation, 400,
		"document key is required")
)

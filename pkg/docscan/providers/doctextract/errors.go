package doctextract

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/WunderSocial/wunder-id/pkg/errx"
)

var registry = errx.NewRegistry("TEXTRACT")

var (
	ErrAnalyzeDocument = registry.Register("ANALYZE_DOCUMENT", errx.TypeExternal, 502,
		"textract analyze document failed")
	ErrDetectText = registry.Register("DETECT_TEXT", errx.TypeExternal, 502,
		"textract detect document text failed")
	ErrBadDocument = registry.Register("BAD_DOCUMENT", errx.TypeValidation, 400,
		"document is unreadable or unsupported")
	ErrDocumentNotFound = registry.Register("DOCUMENT_NOT_FOUND", errx.TypeNotFound, 404,
		"document object not found or inaccessible")
	ErrThrottled = registry.Register("THROTTLED", errx.TypeExternal, 429,
		"textract throttled the request")
)

// ParseTextractError maps a Textract SDK error onto the provider's
// error codes, keeping the original as the cause.
func ParseTextractError(err error, fallback *errx.ErrorCode) *errx.Error {
	if err == nil {
		return nil
	}

	var badDoc *types.BadDocumentException
	var unsupported *types.UnsupportedDocumentException
	var tooLarge *types.DocumentTooLargeException
	if errors.As(err, &badDoc) || errors.As(err, &unsupported) || errors.As(err, &tooLarge) {
		return registry.NewWithCause(ErrBadDocument, err)
	}

	var badS3 *types.InvalidS3ObjectException
	if errors.As(err, &badS3) {
		return registry.NewWithCause(ErrDocumentNotFound, err)
	}

	var throttled *types.ThrottlingException
	var overProvisioned *types.ProvisionedThroughputExceededException
	if errors.As(err, &throttled) || errors.As(err, &overProvisioned) {
		return registry.NewWithCause(ErrThrottled, err)
	}

	return registry.NewWithCause(fallback, err)
}

package docbedrock

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/WunderSocial/wunder-id/pkg/errx"
)

var registry = errx.NewRegistry("BEDROCK")

var (
	ErrConverse = registry.Register("CONVERSE", errx.TypeExternal, 502,
		"bedrock converse call failed")
	ErrReadDocument = registry.Register("READ_DOCUMENT", errx.TypeNotFound, 404,
		"could not read document image")
	ErrBadResponse = registry.Register("BAD_RESPONSE", errx.TypeExternal, 502,
		"bedrock returned an unusable response")
	ErrThrottled = registry.Register("THROTTLED", errx.TypeExternal, 429,
		"bedrock throttled the request")
	ErrModelNotFound = registry.Register("MODEL_NOT_FOUND", errx.TypeNotFound, 404,
		"bedrock model not found")
)

// ParseBedrockError maps a Bedrock SDK error onto the provider's error
// codes, keeping the original as the cause.
func ParseBedrockError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var throttled *types.ThrottlingException
	if errors.As(err, &throttled) {
		return registry.NewWithCause(ErrThrottled, err)
	}

	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return registry.NewWithCause(ErrModelNotFound, err)
	}

	return registry.NewWithCause(ErrConverse, err)
}

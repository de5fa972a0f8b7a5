package config

import (
	"github.com/WunderSocial/wunder-id/pkg/errx"
)

// DocscanConfig configures the identity document extraction engine and
// its document-analysis provider.
type DocscanConfig struct {
	// Provider selects the document analyzer: "textract" or "bedrock".
	Provider string

	// Region is the AWS region of the analyzer and bucket.
	Region string

	// Bucket holds uploaded document images and diagnostic dumps.
	Bucket string

	// BedrockModel is the model used by the bedrock analyzer.
	BedrockModel string

	// Debug enables verbose extraction logging.
	Debug bool

	// DebugDump persists raw analyzer output to storage when Debug is on.
	DebugDump bool
}

func loadDocscanConfig() DocscanConfig {
	return DocscanConfig{
		Provider:     getEnv("DOCSCAN_PROVIDER", "textract"),
		Region:       getEnv("AWS_REGION", ""),
		Bucket:       getEnv("AWS_S3_BUCKET", ""),
		BedrockModel: getEnv("DOCSCAN_BEDROCK_MODEL", "anthropic.claude-3-5-sonnet-20241022-v2:0"),
		Debug:        getEnvBool("DOCSCAN_DEBUG", false),
		DebugDump:    getEnvBool("DOCSCAN_DEBUG_S3", false),
	}
}

// Validate checks that every setting required before a provider call is
// present. Missing provider configuration is fatal and never retried.
func (c DocscanConfig) Validate() error {
	var missing []string
	if c.Region == "" {
		missing = append(missing, "AWS_REGION")
	}
	if c.Bucket == "" {
		missing = append(missing, "AWS_S3_BUCKET")
	}
	if len(missing) > 0 {
		return errx.New("missing document analyzer configuration", errx.TypeValidation).
			WithDetail("missing", missing)
	}
	return nil
}

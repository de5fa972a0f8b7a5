// Package doctextract implements the document-analysis contract on top
// of Amazon Textract. Documents are referenced by their S3 object key;
// the query-analysis call runs with the QUERIES, FORMS and TABLES
// features so answers, key/value pairs and table cells all come back in
// one pass.
package doctextract

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

// Provider calls Textract for a fixed S3 bucket.
type Provider struct {
	client *textract.Client
	bucket string
}

// New creates a provider around an existing Textract client.
func New(client *textract.Client, bucket string) *Provider {
	return &Provider{client: client, bucket: bucket}
}

// NewFromConfig creates a provider from an AWS config.
func NewFromConfig(cfg aws.Config, bucket string) *Provider {
	return New(textract.NewFromConfig(cfg), bucket)
}

// AnalyzeWithQueries runs AnalyzeDocument with the given queries against
// the object at docKey.
func (p *Provider) AnalyzeWithQueries(ctx context.Context, docKey string, queries []docscan.Query) ([]docscan.Block, error) {
	tq := make([]types.Query, 0, len(queries))
	for _, q := range queries {
		tq = append(tq, types.Query{
			Text:  aws.String(q.Text),
			Alias: aws.String(string(q.Alias)),
		})
	}

	out, err := p.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(p.bucket),
				Name:   aws.String(docKey),
			},
		},
		FeatureTypes: []types.FeatureType{
			types.FeatureTypeQueries,
			types.FeatureTypeForms,
			types.FeatureTypeTables,
		},
		QueriesConfig: &types.QueriesConfig{Queries: tq},
	})
	if err != nil {
		return nil, ParseTextractError(err, ErrAnalyzeDocument)
	}
	return convertBlocks(out.Blocks), nil
}

// DetectText runs plain text detection against the object at docKey.
func (p *Provider) DetectText(ctx context.Context, docKey string) ([]docscan.Block, error) {
	out, err := p.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(p.bucket),
				Name:   aws.String(docKey),
			},
		},
	})
	if err != nil {
		return nil, ParseTextractError(err, ErrDetectText)
	}
	return convertBlocks(out.Blocks), nil
}

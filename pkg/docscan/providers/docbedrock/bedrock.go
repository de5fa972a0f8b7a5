// Package docbedrock implements the document-analysis contract on top
// of Amazon Bedrock's Converse API. A multimodal model reads the
// document image directly: queries become a JSON-answer prompt, text
// detection becomes a transcription prompt. It is a drop-in alternative
// to the Textract provider for deployments without Textract access.
package docbedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
	"github.com/WunderSocial/wunder-id/pkg/fsx"
)

const defaultModel = "anthropic.claude-3-5-sonnet-20240620-v1:0"

// Provider answers document queries with a multimodal Bedrock model.
// Document keys resolve through the given file reader, so the same
// provider works against S3 or local disk.
type Provider struct {
	client *bedrockruntime.Client
	files  fsx.FileReader
	model  string
}

// Option configures a Provider.
type Option func(*Provider)

// WithModel overrides the model id.
func WithModel(model string) Option {
	return func(p *Provider) { p.model = model }
}

// New creates a provider around an existing Bedrock runtime client.
func New(client *bedrockruntime.Client, files fsx.FileReader, opts ...Option) *Provider {
	p := &Provider{client: client, files: files, model: defaultModel}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromConfig creates a provider from an AWS config.
func NewFromConfig(cfg aws.Config, files fsx.FileReader, opts ...Option) *Provider {
	return New(bedrockruntime.NewFromConfig(cfg), files, opts...)
}

// AnalyzeWithQueries asks the model every query in one shot and expects
// a JSON object keyed by alias. Missing or unreadable fields come back
// as empty strings and are dropped.
func (p *Provider) AnalyzeWithQueries(ctx context.Context, docKey string, queries []docscan.Query) ([]docscan.Block, error) {
	var sb strings.Builder
	sb.WriteString("You are reading an identity document image. Answer each question with the exact text printed on the document.\n")
	sb.WriteString("Respond with only a JSON object mapping the given key to the answer string. Use \"\" when the document does not show the answer.\n\n")
	for _, q := range queries {
		fmt.Fprintf(&sb, "%s: %s\n", q.Alias, q.Text)
	}

	text, err := p.converse(ctx, docKey, sb.String())
	if err != nil {
		return nil, err
	}

	answers := make(map[string]string)
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &answers); err != nil {
		return nil, registry.NewWithCause(ErrBadResponse, err)
	}

	blocks := make([]docscan.Block, 0, len(answers))
	for alias, answer := range answers {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		blocks = append(blocks, docscan.Block{
			Type:  docscan.BlockTypeQueryResult,
			Text:  answer,
			Alias: docscan.Alias(alias),
		})
	}
	return blocks, nil
}

// DetectText asks the model to transcribe every visible line, one line
// of output per line on the document.
func (p *Provider) DetectText(ctx context.Context, docKey string) ([]docscan.Block, error) {
	text, err := p.converse(ctx, docKey,
		"Transcribe every piece of visible text on this document image, one line of output per printed line, top to bottom. Output only the transcription.")
	if err != nil {
		return nil, err
	}

	var blocks []docscan.Block
	for _, line := range strings.Split(stripCodeFences(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, docscan.Block{Type: docscan.BlockTypeLine, Text: line})
		for _, w := range strings.Fields(line) {
			blocks = append(blocks, docscan.Block{Type: docscan.BlockTypeWord, Text: w})
		}
	}
	return blocks, nil
}

func (p *Provider) converse(ctx context.Context, docKey, prompt string) (string, error) {
	data, err := p.files.ReadFile(ctx, docKey)
	if err != nil {
		return "", registry.NewWithCause(ErrReadDocument, err).WithDetail("docKey", docKey)
	}

	out, err := p.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(p.model),
		Messages: []types.Message{{
			Role: types.ConversationRoleUser,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberImage{Value: types.ImageBlock{
					Format: imageFormat(docKey),
					Source: &types.ImageSourceMemberBytes{Value: data},
				}},
				&types.ContentBlockMemberText{Value: prompt},
			},
		}},
	})
	if err != nil {
		return "", ParseBedrockError(err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(msg.Value.Content) == 0 {
		return "", registry.New(ErrBadResponse)
	}
	txt, ok := msg.Value.Content[0].(*types.ContentBlockMemberText)
	if !ok {
		return "", registry.New(ErrBadResponse)
	}
	return txt.Value, nil
}

func imageFormat(docKey string) types.ImageFormat {
	switch strings.ToLower(path.Ext(docKey)) {
	case ".png":
		return types.ImageFormatPng
	case ".webp":
		return types.ImageFormatWebp
	case ".gif":
		return types.ImageFormatGif
	default:
		return types.ImageFormatJpeg
	}
}

// stripCodeFences unwraps a fenced response such as "```json ... ```".
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

package doctextract

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

// convertBlocks maps Textract blocks onto the engine's block model.
//
// QUERY_RESULT blocks do not carry their alias themselves: the alias
// lives on the QUERY block, which points at its results through an
// ANSWER relationship. Resolution walks QUERY blocks and stamps the
// alias onto each referenced result.
func convertBlocks(blocks []types.Block) []docscan.Block {
	aliasFor := make(map[string]string)
	for _, b := range blocks {
		if b.BlockType != types.BlockTypeQuery || b.Query == nil || b.Query.Alias == nil {
			continue
		}
		for _, rel := range b.Relationships {
			if rel.Type != types.RelationshipTypeAnswer {
				continue
			}
			for _, id := range rel.Ids {
				aliasFor[id] = *b.Query.Alias
			}
		}
	}

	out := make([]docscan.Block, 0, len(blocks))
	for _, b := range blocks {
		var conf float32
		if b.Confidence != nil {
			conf = *b.Confidence
		}
		switch b.BlockType {
		case types.BlockTypeLine:
			out = append(out, docscan.Block{
				Type: docscan.BlockTypeLine, Text: aws.ToString(b.Text), Confidence: conf,
			})
		case types.BlockTypeWord:
			out = append(out, docscan.Block{
				Type: docscan.BlockTypeWord, Text: aws.ToString(b.Text), Confidence: conf,
			})
		case types.BlockTypeQueryResult:
			var alias docscan.Alias
			if b.Id != nil {
				alias = docscan.Alias(aliasFor[*b.Id])
			}
			out = append(out, docscan.Block{
				Type: docscan.BlockTypeQueryResult, Text: aws.ToString(b.Text),
				Alias: alias, Confidence: conf,
			})
		}
	}
	return out
}

// Package docscan extracts a structured identity record from photographed
// identity documents (passports and UK-style driving licences).
//
// The engine collects raw OCR output from a document-analysis provider,
// classifies the document, and reconciles noisy, locale-varying text into
// a canonical record using layered heuristics: direct query answers first,
// then MRZ decoding, then label-anchored text search. Every heuristic is
// best-effort — a miss leaves the field empty, it never fails the run.
package docscan

import (
	"context"
)

// BlockType is the granularity of a recognized block.
type BlockType string

const (
	// BlockTypeLine is a full recognized text line.
	BlockTypeLine BlockType = "LINE"
	// BlockTypeWord is a single recognized token.
	BlockTypeWord BlockType = "WORD"
	// BlockTypeQueryResult is the provider's answer to an aliased query.
	BlockTypeQueryResult BlockType = "QUERY_RESULT"
)

// Block is one unit of provider output.
type Block struct {
	Type       BlockType
	Text       string
	Alias      Alias // set on QUERY_RESULT blocks
	Confidence float32
}

// Query is a natural-language question about the document, paired with
// the alias its answer is keyed by.
type Query struct {
	Text  string
	Alias Alias
}

// DocumentAnalyzer is the inbound contract to the document-analysis
// provider. AnalyzeWithQueries is the primary call; DetectText is the
// supplementary plain text-detection call and may fail without failing
// the extraction.
type DocumentAnalyzer interface {
	AnalyzeWithQueries(ctx context.Context, docKey string, queries []Query) ([]Block, error)
	DetectText(ctx context.Context, docKey string) ([]Block, error)
}

// CallMeta records one provider call for diagnostics.
type CallMeta struct {
	Kind    string `json:"kind"`
	Queries int    `json:"queries"`
}

// BlockSet is the merged OCR output of one extraction run. Lines keep
// provider order (label/value pairs are usually adjacent lines); Words
// are used order-insensitively. A BlockSet is built once per request and
// treated as immutable by everything downstream.
type BlockSet struct {
	Lines   []string
	Words   []string
	Answers Answers

	// Diagnostics only; never consulted for correctness.
	BlockTypeCounts map[string]int
	Calls           []CallMeta
	DumpPath        string
}

// mergeBlocks folds provider blocks into the set, deduplicating lines
// and words by exact string, order-preserving, first occurrence wins.
func (s *BlockSet) mergeBlocks(blocks []Block) {
	haveLine := make(map[string]bool, len(s.Lines))
	for _, l := range s.Lines {
		haveLine[l] = true
	}
	haveWord := make(map[string]bool, len(s.Words))
	for _, w := range s.Words {
		haveWord[w] = true
	}

	for _, b := range blocks {
		if s.BlockTypeCounts == nil {
			s.BlockTypeCounts = make(map[string]int)
		}
		s.BlockTypeCounts[string(b.Type)]++

		text := trimSpace(b.Text)
		switch b.Type {
		case BlockTypeLine:
			if text != "" && !haveLine[text] {
				s.Lines = append(s.Lines, text)
				haveLine[text] = true
			}
		case BlockTypeWord:
			if text != "" && !haveWord[text] {
				s.Words = append(s.Words, text)
				haveWord[text] = true
			}
		case BlockTypeQueryResult:
			if b.Alias != "" {
				s.Answers.set(b.Alias, text)
			}
		}
	}
}

package docscan_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
)

// fakeAnalyzer is a test double for the provider contract.
type fakeAnalyzer struct {
	mu           sync.Mutex
	queryBatches [][]docscan.Query
	queryBlocks  []docscan.Block
	queryErr     error
	detectBlocks []docscan.Block
	detectErr    error
}

func (f *fakeAnalyzer) AnalyzeWithQueries(_ context.Context, _ string, queries []docscan.Query) ([]docscan.Block, error) {
	f.mu.Lock()
	f.queryBatches = append(f.queryBatches, queries)
	f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryBlocks, nil
}

func (f *fakeAnalyzer) DetectText(context.Context, string) ([]docscan.Block, error) {
	if f.detectErr != nil {
		return nil, f.detectErr
	}
	return f.detectBlocks, nil
}

func lineBlocks(texts ...string) []docscan.Block {
	blocks := make([]docscan.Block, 0, len(texts))
	for _, t := range texts {
		blocks = append(blocks, docscan.Block{Type: docscan.BlockTypeLine, Text: t})
	}
	return blocks
}

func TestCollectMergesAndDeduplicates(t *testing.T) {
	fake := &fakeAnalyzer{
		queryBlocks: append(lineBlocks("A", "B"),
			docscan.Block{Type: docscan.BlockTypeQueryResult, Text: "MORGAN", Alias: docscan.AliasSurname}),
		detectBlocks: append(lineBlocks("B", "C"),
			docscan.Block{Type: docscan.BlockTypeWord, Text: "C"}),
	}
	c := docscan.NewCollector(fake, nil, false)

	set, err := c.Collect(context.Background(), "doc.jpg", docscan.DocumentTypeLicense)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(set.Lines) != len(want) {
		t.Fatalf("lines = %v, want %v", set.Lines, want)
	}
	for i, l := range want {
		if set.Lines[i] != l {
			t.Fatalf("lines[%d] = %q, want %q", i, set.Lines[i], l)
		}
	}
	if set.Answers.Surname != "MORGAN" {
		t.Fatalf("surname answer = %q", set.Answers.Surname)
	}
	if len(set.Words) != 1 || set.Words[0] != "C" {
		t.Fatalf("words = %v", set.Words)
	}
}

func TestCollectQueryFailureIsFatal(t *testing.T) {
	fake := &fakeAnalyzer{
		queryErr:     errors.New("boom"),
		detectBlocks: lineBlocks("C"),
	}
	c := docscan.NewCollector(fake, nil, false)

	if _, err := c.Collect(context.Background(), "doc.jpg", docscan.DocumentTypeLicense); err == nil {
		t.Fatal("expected error when the query call fails")
	}
}

func TestCollectDetectFailureDegrades(t *testing.T) {
	fake := &fakeAnalyzer{
		queryBlocks: lineBlocks("A"),
		detectErr:   errors.New("boom"),
	}
	c := docscan.NewCollector(fake, nil, false)

	set, err := c.Collect(context.Background(), "doc.jpg", docscan.DocumentTypeLicense)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(set.Lines) != 1 || set.Lines[0] != "A" {
		t.Fatalf("lines = %v, want query output only", set.Lines)
	}
	for _, call := range set.Calls {
		if call.Kind == "detect" {
			t.Fatal("a failed detect call must not be recorded")
		}
	}
}

func TestCollectBatchesMixedQueries(t *testing.T) {
	fake := &fakeAnalyzer{}
	c := docscan.NewCollector(fake, nil, false)

	set, err := c.Collect(context.Background(), "doc.jpg", docscan.DocumentTypeUnknown)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	fake.mu.Lock()
	batches := fake.queryBatches
	fake.mu.Unlock()

	total := len(docscan.LicenceQueries) + len(docscan.PassportQueries)
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	got := len(batches[0]) + len(batches[1])
	if got != total {
		t.Fatalf("queries sent = %d, want %d", got, total)
	}
	for _, b := range batches {
		if len(b) > docscan.QueryLimit {
			t.Fatalf("batch of %d exceeds limit %d", len(b), docscan.QueryLimit)
		}
	}

	mixed := 0
	for _, call := range set.Calls {
		if call.Kind == "mixed" {
			mixed++
		}
	}
	if mixed != 2 {
		t.Fatalf("mixed calls = %d, want 2", mixed)
	}
}

func TestCollectHintSelectsQuerySet(t *testing.T) {
	fake := &fakeAnalyzer{}
	c := docscan.NewCollector(fake, nil, false)

	if _, err := c.Collect(context.Background(), "doc.jpg", docscan.DocumentTypePassport); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.queryBatches) != 1 {
		t.Fatalf("batches = %d, want 1", len(fake.queryBatches))
	}
	if len(fake.queryBatches[0]) != len(docscan.PassportQueries) {
		t.Fatalf("queries = %d, want %d", len(fake.queryBatches[0]), len(docscan.PassportQueries))
	}
}

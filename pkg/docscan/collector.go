package docscan

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/WunderSocial/wunder-id/pkg/asyncx"
	"github.com/WunderSocial/wunder-id/pkg/fsx"
	"github.com/WunderSocial/wunder-id/pkg/logx"
)

var unsafeKeyCharsRe = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Collector gathers provider output into a BlockSet. The query-analysis
// call is the primary source; plain text detection supplements it and is
// allowed to fail.
type Collector struct {
	analyzer DocumentAnalyzer
	dumps    fsx.FileWriter
	debug    bool
}

// NewCollector creates a collector. dumps may be nil to disable raw
// block dumping even in debug mode.
func NewCollector(analyzer DocumentAnalyzer, dumps fsx.FileWriter, debug bool) *Collector {
	return &Collector{analyzer: analyzer, dumps: dumps, debug: debug}
}

// queriesFor selects the query set for a document-type hint. With no
// usable hint both sets run, so either document family can answer.
func queriesFor(hint DocumentType) (queries []Query, kind string) {
	switch hint {
	case DocumentTypeLicense:
		return LicenceQueries, "license"
	case DocumentTypePassport:
		return PassportQueries, "passport"
	default:
		merged := make([]Query, 0, len(LicenceQueries)+len(PassportQueries))
		merged = append(merged, LicenceQueries...)
		merged = append(merged, PassportQueries...)
		return merged, "mixed"
	}
}

// batchQueries splits queries into provider-sized batches.
func batchQueries(queries []Query) [][]Query {
	var batches [][]Query
	for len(queries) > QueryLimit {
		batches = append(batches, queries[:QueryLimit])
		queries = queries[QueryLimit:]
	}
	if len(queries) > 0 {
		batches = append(batches, queries)
	}
	return batches
}

// Collect runs the provider calls for docKey and merges their output.
// Query batches and text detection run concurrently. A query-call error
// is fatal; a text-detection error only degrades line coverage and is
// logged. Query output is merged first, so its lines take precedence in
// the deduplicated order.
func (c *Collector) Collect(ctx context.Context, docKey string, hint DocumentType) (BlockSet, error) {
	queries, kind := queriesFor(hint)
	batches := batchQueries(queries)

	futures := make([]*asyncx.Future[[]Block], 0, len(batches))
	for _, batch := range batches {
		batch := batch
		futures = append(futures, asyncx.Run(func() ([]Block, error) {
			return c.analyzer.AnalyzeWithQueries(ctx, docKey, batch)
		}))
	}
	detect := asyncx.Run(func() ([]Block, error) {
		return c.analyzer.DetectText(ctx, docKey)
	})

	var set BlockSet
	for i, f := range futures {
		blocks, err := f.Await()
		if err != nil {
			return BlockSet{}, registry.NewWithCause(ErrAnalyzeFailed, err).
				WithDetail("docKey", docKey).
				WithDetail("batch", i)
		}
		set.mergeBlocks(blocks)
		set.Calls = append(set.Calls, CallMeta{Kind: kind, Queries: len(batches[i])})
	}

	detected, err := detect.Await()
	if err != nil {
		logx.WithFields(logx.Fields{"docKey": docKey, "error": err.Error()}).
			Warn("text detection failed, continuing with query output only")
	} else {
		set.mergeBlocks(detected)
		set.Calls = append(set.Calls, CallMeta{Kind: "detect", Queries: 0})
	}

	if c.debug && c.dumps != nil {
		set.DumpPath = c.dump(docKey, set)
	}
	return set, nil
}

// dump writes the merged block set to storage, fire-and-forget. A dump
// failure is logged and never surfaces to the caller.
func (c *Collector) dump(docKey string, set BlockSet) string {
	safe := unsafeKeyCharsRe.ReplaceAllString(docKey, "_")
	path := fmt.Sprintf("docscan-debug/%s-%s-%s.json",
		time.Now().UTC().Format("20060102T150405Z"), uuid.NewString(), safe)

	payload, err := json.Marshal(set)
	if err != nil {
		logx.WithFields(logx.Fields{"error": err.Error()}).Warn("failed to encode debug dump")
		return ""
	}
	w := c.dumps
	asyncx.Do(func() {
		if err := w.WriteFile(context.Background(), path, payload); err != nil {
			logx.WithFields(logx.Fields{"path": path, "error": err.Error()}).
				Warn("failed to write debug dump")
		}
	})
	return path
}

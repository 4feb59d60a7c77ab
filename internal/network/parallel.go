package network

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PartitionByPage splits an ordered edit stream into at most n partitions
// without breaking page groups apart, preserving intra-page order. Page
// groups are dealt out round-robin so partitions come out roughly even.
func PartitionByPage(edits []EditRecord, n int) [][]EditRecord {
	if n < 1 {
		n = 1
	}
	partitions := make([][]EditRecord, n)
	group := 0
	for i := 0; i < len(edits); {
		j := i + 1
		for j < len(edits) && edits[j].PageID == edits[i].PageID {
			j++
		}
		k := group % n
		partitions[k] = append(partitions[k], edits[i:j]...)
		group++
		i = j
	}
	out := partitions[:0]
	for _, p := range partitions {
		if len(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// BuildPartitions builds one network per partition concurrently and folds
// the results by edge-weight summation. Provided every page's edits stay
// within a single partition, the merged result equals a whole-stream Build.
func BuildPartitions(ctx context.Context, partitions [][]EditRecord, opts Options) (*Graph, error) {
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidNetworkType, opts.Type)
	}
	if len(partitions) == 0 {
		g := NewGraph(opts.Type == Talk)
		g.Finalize()
		g.CollapseWeights()
		return g, nil
	}

	results := make([]*Graph, len(partitions))
	eg, ctx := errgroup.WithContext(ctx)
	for i, part := range partitions {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := Build(part, opts)
			if err != nil {
				return err
			}
			results[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return MergeGraphs(results...)
}

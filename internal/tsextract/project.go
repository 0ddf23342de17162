package tsextract

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/shapecheck/shapecheck/internal/schema"
)

// ExtractFiles runs Extract concurrently across filenames and merges the
// results into one schema, mirroring the concurrency-safety note in spec §5
// ("the same schema may be used from many threads concurrently") at the
// point the schema is built rather than only once it is read.
func ExtractFiles(filenames []string) (*schema.Schema, error) {
	results := make([]*schema.Schema, len(filenames))

	var g errgroup.Group
	for i, fn := range filenames {
		i, fn := i, fn
		g.Go(func() error {
			source, err := os.ReadFile(fn)
			if err != nil {
				return fmt.Errorf("tsextract: read %s: %w", fn, err)
			}
			s, err := Extract(source, fn)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := schema.NewSchema()
	for i, s := range results {
		for name, t := range s.Types {
			if existing, ok := merged.Types[name]; ok {
				return nil, fmt.Errorf("tsextract: duplicate type name %q in %s and %s", name, existing.Filename, filenames[i])
			}
			merged.Types[name] = t
		}
		merged.AssertedTypes = append(merged.AssertedTypes, s.AssertedTypes...)
	}
	sort.Strings(merged.AssertedTypes)
	return merged, nil
}

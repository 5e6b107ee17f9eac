package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mokjaru/mokja/blobstore"
	"github.com/mokjaru/mokja/vectorindex"
)

// Source names one artifact blob and the embedding space it populates.
type Source struct {
	Space vectorindex.Space
	Name  string
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Logger receives load progress and failures.
	Logger *slog.Logger

	// Concurrency bounds the number of artifacts fetched and decoded in
	// parallel.
	Concurrency int
}

// DefaultLoaderOptions are the recommended defaults.
var DefaultLoaderOptions = LoaderOptions{
	Logger:      slog.Default(),
	Concurrency: 4,
}

// Loader fetches artifacts from a blob store and feeds them into the
// vector index. Vectors are normalized on ingest, so a later dot-product
// search ranks by cosine similarity.
type Loader struct {
	store blobstore.Store
	index *vectorindex.Store
	opts  LoaderOptions
}

// NewLoader creates a Loader over the given blob store and index.
func NewLoader(store blobstore.Store, index *vectorindex.Store, optFns ...func(o *LoaderOptions)) *Loader {
	opts := DefaultLoaderOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Loader{store: store, index: index, opts: opts}
}

// Load fetches, decodes and indexes every source. Sources are processed
// concurrently; the first failure cancels the rest and no result is
// returned. Successfully indexed vectors stay in the index either way,
// shadowing any previous rows with the same ids.
func (l *Loader) Load(ctx context.Context, sources ...Source) (map[vectorindex.Space]vectorindex.StoreResult, error) {
	results := make(map[vectorindex.Space]vectorindex.StoreResult, len(sources))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)

	for _, src := range sources {
		g.Go(func() error {
			res, err := l.loadOne(ctx, src)
			if err != nil {
				return err
			}
			mu.Lock()
			results[src.Space] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) loadOne(ctx context.Context, src Source) (vectorindex.StoreResult, error) {
	payload, err := l.store.Fetch(ctx, src.Name)
	if err != nil {
		return vectorindex.StoreResult{}, fmt.Errorf("fetch artifact %q: %w", src.Name, err)
	}

	doc, err := Decode(src.Name, payload)
	if err != nil {
		return vectorindex.StoreResult{}, err
	}

	res, err := l.index.Add(ctx, src.Space, doc.Embeddings(), true)
	if err != nil {
		return vectorindex.StoreResult{}, fmt.Errorf("index artifact %q: %w", src.Name, err)
	}

	l.opts.Logger.InfoContext(ctx, "artifact loaded",
		slog.String("name", src.Name),
		slog.String("space", string(src.Space)),
		slog.Int("vectors", res.Count),
		slog.Int("dimension", res.Dimension),
	)
	return res, nil
}

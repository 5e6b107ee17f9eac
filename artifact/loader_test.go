package artifact

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokjaru/mokja/blobstore"
	"github.com/mokjaru/mokja/vectorindex"
)

func discardLogger() func(o *LoaderOptions) {
	return func(o *LoaderOptions) {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

func putDocument(t *testing.T, store *blobstore.MemoryStore, name string, doc Document) {
	t.Helper()
	raw, err := gojson.Marshal(doc)
	require.NoError(t, err)
	payload, err := Compress(name, raw)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), name, payload))
}

func TestDecode(t *testing.T) {
	doc := Document{
		Space:   "diner-embedding",
		IDs:     []string{"1", "2"},
		Vectors: [][]float32{{1, 0}, {0, 1}},
	}
	raw, err := gojson.Marshal(doc)
	require.NoError(t, err)

	t.Run("Raw", func(t *testing.T) {
		got, err := Decode("diner.json", raw)
		require.NoError(t, err)
		assert.Equal(t, doc.IDs, got.IDs)
		assert.Equal(t, doc.Vectors, got.Vectors)
	})

	t.Run("Zstd", func(t *testing.T) {
		payload, err := Compress("diner.json.zst", raw)
		require.NoError(t, err)
		got, err := Decode("diner.json.zst", payload)
		require.NoError(t, err)
		assert.Equal(t, doc.IDs, got.IDs)
	})

	t.Run("LZ4", func(t *testing.T) {
		payload, err := Compress("diner.json.lz4", raw)
		require.NoError(t, err)
		got, err := Decode("diner.json.lz4", payload)
		require.NoError(t, err)
		assert.Equal(t, doc.IDs, got.IDs)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		bad, err := gojson.Marshal(Document{IDs: []string{"1"}, Vectors: nil})
		require.NoError(t, err)
		_, err = Decode("bad.json", bad)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := Decode("junk.json", []byte("{not json"))
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestLoaderLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("LoadsBothSpaces", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putDocument(t, store, "user.json.zst", Document{
			IDs:     []string{"9001"},
			Vectors: [][]float32{{1, 0, 0}},
		})
		putDocument(t, store, "diner.json.zst", Document{
			IDs:     []string{"1", "2"},
			Vectors: [][]float32{{1, 0, 0}, {0, 1, 0}},
		})

		index := vectorindex.NewStore()
		loader := NewLoader(store, index, discardLogger())

		results, err := loader.Load(ctx,
			Source{Space: vectorindex.SpaceUser, Name: "user.json.zst"},
			Source{Space: vectorindex.SpaceDiner, Name: "diner.json.zst"},
		)
		require.NoError(t, err)
		assert.Equal(t, 1, results[vectorindex.SpaceUser].Count)
		assert.Equal(t, 2, results[vectorindex.SpaceDiner].Count)

		emb, err := index.Lookup(ctx, vectorindex.SpaceDiner, "2")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, float64(emb.Values[1]), 1e-5)
	})

	t.Run("MissingArtifact", func(t *testing.T) {
		index := vectorindex.NewStore()
		loader := NewLoader(blobstore.NewMemoryStore(), index, discardLogger())

		_, err := loader.Load(ctx, Source{Space: vectorindex.SpaceUser, Name: "absent.json"})
		require.Error(t, err)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ReloadShadowsPreviousRows", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putDocument(t, store, "diner.json", Document{
			IDs:     []string{"1"},
			Vectors: [][]float32{{1, 0}},
		})

		index := vectorindex.NewStore()
		loader := NewLoader(store, index, discardLogger())
		src := Source{Space: vectorindex.SpaceDiner, Name: "diner.json"}

		_, err := loader.Load(ctx, src)
		require.NoError(t, err)

		putDocument(t, store, "diner.json", Document{
			IDs:     []string{"1"},
			Vectors: [][]float32{{0, 1}},
		})
		_, err = loader.Load(ctx, src)
		require.NoError(t, err)

		emb, err := index.Lookup(ctx, vectorindex.SpaceDiner, "1")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, float64(emb.Values[1]), 1e-5)
	})
}

func TestRefresher(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	putDocument(t, store, "user.json", Document{
		IDs:     []string{"9001"},
		Vectors: [][]float32{{1}},
	})

	index := vectorindex.NewStore()
	loader := NewLoader(store, index, discardLogger())
	sources := []Source{{Space: vectorindex.SpaceUser, Name: "user.json"}}

	t.Run("ThrottlesBackToBackRefreshes", func(t *testing.T) {
		refresher := NewRefresher(loader, sources, time.Hour)

		_, err := refresher.Refresh(ctx)
		require.NoError(t, err)

		_, err = refresher.Refresh(ctx)
		assert.ErrorIs(t, err, ErrRefreshThrottled)
	})

	t.Run("NoThrottleWhenDisabled", func(t *testing.T) {
		refresher := NewRefresher(loader, sources, 0)
		for i := 0; i < 3; i++ {
			_, err := refresher.Refresh(ctx)
			require.NoError(t, err)
		}
	})
}

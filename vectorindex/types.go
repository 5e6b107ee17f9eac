package vectorindex

// Space tags an independent embedding namespace. Each space owns exactly one
// index; spaces never share ids.
type Space string

const (
	// SpaceUser holds reviewer embeddings from the offline node2vec run.
	SpaceUser Space = "user-embedding"
	// SpaceDiner holds diner embeddings from the offline node2vec run.
	SpaceDiner Space = "diner-embedding"
)

// Embedding is one entity's dense vector.
type Embedding struct {
	ID     string
	Values []float32
}

// StoreResult reports the post-insert state of a space.
type StoreResult struct {
	// Count is the total number of stored rows after the insert,
	// including rows shadowed by a later insert of the same id.
	Count int
	// Dimension is the space's fixed vector dimensionality.
	Dimension int
}

// Neighbor is one scored search result.
type Neighbor struct {
	ID string
	// Score is the plain dot product between the query and the stored row.
	// With both sides L2-normalized this is the cosine similarity.
	Score float32
}

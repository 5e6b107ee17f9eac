// Package recommend turns a user identity into a personalized ordering of a
// caller-supplied diner set, backed by offline-trained embeddings and a
// user-based collaborative-filtering matrix for cold-start users.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/mokjaru/mokja/vectorindex"
)

// ErrPersonalizationUnavailable is returned when no reviewer identity or
// embedding exists for a user. It is recoverable: callers fall back to
// popularity ranking instead of surfacing a failure.
var ErrPersonalizationUnavailable = errors.New("personalization unavailable")

// ReviewerResolver maps an application user to the reviewer identity used
// by the offline training pipeline. Implemented by the excluded user
// service.
type ReviewerResolver interface {
	// ResolveReviewerID returns the reviewer id for the user, or ok=false
	// when no mapping exists. An error reports a lookup failure, not an
	// absent mapping.
	ResolveReviewerID(ctx context.Context, userID string) (reviewerID string, ok bool, err error)
}

// Orchestrator ranks candidate diners by dot product with a user's
// embedding.
type Orchestrator struct {
	store    *vectorindex.Store
	resolver ReviewerResolver
}

// NewOrchestrator creates an Orchestrator over the given embedding store
// and reviewer resolver.
func NewOrchestrator(store *vectorindex.Store, resolver ReviewerResolver) *Orchestrator {
	return &Orchestrator{store: store, resolver: resolver}
}

// RankForUser resolves the user to a reviewer embedding and ranks exactly
// the supplied candidate diner ids by dot product with it, highest first.
// Candidates absent from the diner index are silently dropped.
//
// Returns ErrPersonalizationUnavailable when the user has no reviewer
// mapping or no stored embedding; callers treat that as "fall back to
// popularity", never as a user-facing error.
func (o *Orchestrator) RankForUser(ctx context.Context, userID string, candidateDinerIDs []string) ([]vectorindex.Neighbor, error) {
	reviewerID, ok, err := o.resolver.ResolveReviewerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve reviewer for user %q: %w", userID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %q has no reviewer mapping", ErrPersonalizationUnavailable, userID)
	}

	embedding, err := o.store.Lookup(ctx, vectorindex.SpaceUser, reviewerID)
	if err != nil {
		if errors.Is(err, vectorindex.ErrNotFound) {
			return nil, fmt.Errorf("%w: reviewer %q has no embedding", ErrPersonalizationUnavailable, reviewerID)
		}
		return nil, err
	}

	// k=0: the caller wants the full personalized ranking of its
	// candidates, not a bounded neighbor list.
	return o.store.SearchWithin(ctx, vectorindex.SpaceDiner, embedding.Values, 0, candidateDinerIDs)
}

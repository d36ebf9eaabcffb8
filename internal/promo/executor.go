package promo

import "context"

// CollectionMutator applies membership mutations against the remote
// platform. Both operations are expected to be idempotent there: adding an
// already-present product or removing an absent one succeeds as a no-op.
type CollectionMutator interface {
	AddProductToCollection(ctx context.Context, collectionGID, productGID string) error
	RemoveProductFromCollection(ctx context.Context, collectionGID, productGID string) error
}

// Result records the outcome of one executed decision.
type Result struct {
	City   City   `json:"city"`
	Action Action `json:"action"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// Execute applies each decision independently and returns one Result per
// decision, in input order. A failed mutation marks only its own result;
// the remaining decisions are still attempted and nothing is rolled back.
func Execute(ctx context.Context, mutator CollectionMutator, productGID string, decisions []Decision) []Result {
	results := make([]Result, 0, len(decisions))

	for _, d := range decisions {
		var err error
		if d.Action == ActionAdd {
			err = mutator.AddProductToCollection(ctx, d.CollectionID, productGID)
		} else {
			err = mutator.RemoveProductFromCollection(ctx, d.CollectionID, productGID)
		}

		result := Result{City: d.City, Action: d.Action, OK: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return results
}

package promo

import "dealsync/internal/services/shopify"

// Action is the membership operation a decision requests.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Decision is one planned add/remove against a city's deal collection.
type Decision struct {
	City           City   `json:"city"`
	Action         Action `json:"action"`
	CollectionID   string `json:"collection_id"`
	VariantID      int64  `json:"variant_id"`
	Price          Amount `json:"price"`
	CompareAtPrice Amount `json:"compare_at_price"`
}

// PlanStats counts the variants intentionally filtered out of a plan.
type PlanStats struct {
	UnrecognizedCities       int
	UnconfiguredDestinations int
}

// Plan folds the product's variants, in order, into the decision list.
// Variants with an unrecognized city or without a configured destination
// collection are skipped and counted. Multiple variants classifying to the
// same city each produce their own decision; action follows each variant's
// own promo signal.
func Plan(p shopify.Product, cfg Config) ([]Decision, PlanStats) {
	decisions := []Decision{}
	var stats PlanStats

	for _, v := range p.Variants {
		city := ClassifyCity(v, cfg)
		if city == CityUnknown {
			stats.UnrecognizedCities++
			continue
		}

		signal := ClassifyPromo(v, p, city, cfg)

		collectionID, ok := cfg.CollectionFor(city)
		if !ok {
			stats.UnconfiguredDestinations++
			continue
		}

		action := ActionRemove
		if signal.Promo {
			action = ActionAdd
		}

		decisions = append(decisions, Decision{
			City:           city,
			Action:         action,
			CollectionID:   collectionID,
			VariantID:      v.ID,
			Price:          signal.Price,
			CompareAtPrice: signal.CompareAt,
		})
	}

	return decisions, stats
}

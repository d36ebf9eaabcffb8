package promo

// CitySource selects where a variant's city classification is read from.
type CitySource int

const (
	// CityFromTitle classifies using the variant display title.
	CityFromTitle CitySource = iota
	// CityFromMetafield classifies using a configured metafield, falling
	// back to the title when the metafield is missing or empty.
	CityFromMetafield
)

// PromoSource selects the strategy deciding whether a variant is on promo.
type PromoSource int

const (
	// PromoByPrice compares price against compare-at price.
	PromoByPrice PromoSource = iota
	// PromoByMetafield reads a boolean-ish metafield value.
	PromoByMetafield
	// PromoByTag looks for a "deal-<city>" fragment in the product tags.
	PromoByTag
)

// ParseCitySource maps the CITY_SOURCE env value to a CitySource.
// Unknown values fall back to the title source.
func ParseCitySource(s string) CitySource {
	if s == "metafield" {
		return CityFromMetafield
	}
	return CityFromTitle
}

// ParsePromoSource maps the PROMO_SOURCE env value to a PromoSource.
// Unknown values fall back to the price strategy.
func ParsePromoSource(s string) PromoSource {
	switch s {
	case "metafield":
		return PromoByMetafield
	case "tag":
		return PromoByTag
	default:
		return PromoByPrice
	}
}

// Config carries every classification and planning input. It is built once
// at startup and passed explicitly; the classification functions read no
// ambient state.
type Config struct {
	CitySource             CitySource
	CityMetafieldNamespace string
	CityMetafieldKey       string

	PromoSource             PromoSource
	PromoMetafieldNamespace string
	PromoMetafieldKey       string

	// Collections maps each city to its deal collection GID. An empty or
	// missing entry means the city has no managed collection and its
	// variants produce no decisions.
	Collections map[City]string
}

// CollectionFor resolves the destination collection for a city.
func (c Config) CollectionFor(city City) (string, bool) {
	gid, ok := c.Collections[city]
	if !ok || gid == "" {
		return "", false
	}
	return gid, true
}

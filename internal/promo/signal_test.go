package promo

import (
	"testing"

	"dealsync/internal/services/shopify"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "JEDDAH", "jeddah"},
		{"collapses inner whitespace", "Jeddah   /   Large", "jeddah / large"},
		{"trims surrounding whitespace", "  riyadh\t", "riyadh"},
		{"tabs and newlines collapse too", "deal\t\njeddah", "deal jeddah"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected City
	}{
		{"exact jeddah", "jeddah", CityJeddah},
		{"uppercase jeddah", "JEDDAH", CityJeddah},
		{"jeddah with size suffix", "Jeddah / Large", CityJeddah},
		{"misspelling jedddah", "Jedddah", CityJeddah},
		{"misspelling jedah", "jedah 1kg", CityJeddah},
		{"exact riyadh", "Riyadh", CityRiyadh},
		{"misspelling riyad", "riyad", CityRiyadh},
		{"misspelling riadh", "Riadh Express", CityRiyadh},
		{"exact dammam", "dammam", CityDammam},
		{"misspelling damam", "Damam / Small", CityDammam},
		{"embedded in longer text", "delivery to   RIYADH  only", CityRiyadh},
		{"unrecognized city", "Mecca", CityUnknown},
		{"empty input", "", CityUnknown},
		{"whitespace only", "   ", CityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCity(tt.input))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		absent   bool
	}{
		{"plain decimal", "80.00", 80, false},
		{"integer", "100", 100, false},
		{"thousands separator stripped", "1,250.50", 1250.50, false},
		{"surrounding whitespace", "  99.95 ", 99.95, false},
		{"empty is absent", "", 0, true},
		{"whitespace only is absent", "   ", 0, true},
		{"unparsable text is absent", "free", 0, true},
		{"trailing garbage is absent", "80.00 SAR", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if tt.absent {
				assert.True(t, got.IsNaN(), "expected absent amount")
			} else {
				assert.Equal(t, Amount(tt.expected), got)
			}
		})
	}
}

func TestClassifyCityFromTitle(t *testing.T) {
	cfg := Config{CitySource: CityFromTitle}

	v := shopify.Variant{Title: "Jeddah / 1kg"}
	assert.Equal(t, CityJeddah, ClassifyCity(v, cfg))

	v = shopify.Variant{Title: "Default Title"}
	assert.Equal(t, CityUnknown, ClassifyCity(v, cfg))
}

func TestClassifyCityFromMetafield(t *testing.T) {
	cfg := Config{
		CitySource:             CityFromMetafield,
		CityMetafieldNamespace: "custom",
		CityMetafieldKey:       "city",
	}

	tests := []struct {
		name       string
		variant    shopify.Variant
		expected   City
		reasoning  string
	}{
		{
			name: "metafield value wins over title",
			variant: shopify.Variant{
				Title:      "Riyadh",
				Metafields: []shopify.Metafield{{Namespace: "custom", Key: "city", Value: "dammam"}},
			},
			expected:  CityDammam,
			reasoning: "a present metafield is authoritative",
		},
		{
			name: "unrecognized metafield value does not fall back",
			variant: shopify.Variant{
				Title:      "Riyadh",
				Metafields: []shopify.Metafield{{Namespace: "custom", Key: "city", Value: "mecca"}},
			},
			expected:  CityUnknown,
			reasoning: "a non-empty metafield is authoritative even when it matches no city",
		},
		{
			name: "empty metafield value falls back to title",
			variant: shopify.Variant{
				Title:      "Riyadh",
				Metafields: []shopify.Metafield{{Namespace: "custom", Key: "city", Value: ""}},
			},
			expected: CityRiyadh,
		},
		{
			name: "missing metafield falls back to title",
			variant: shopify.Variant{
				Title:      "Jeddah / Large",
				Metafields: []shopify.Metafield{{Namespace: "other", Key: "city", Value: "dammam"}},
			},
			expected: CityJeddah,
		},
		{
			name:     "no metafields at all falls back to title",
			variant:  shopify.Variant{Title: "damam"},
			expected: CityDammam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCity(tt.variant, cfg), tt.reasoning)
		})
	}
}

func TestClassifyPromoByPrice(t *testing.T) {
	cfg := Config{PromoSource: PromoByPrice}

	tests := []struct {
		name      string
		price     string
		compareAt string
		promo     bool
	}{
		{"discounted", "80.00", "100.00", true},
		{"compare-at equals price", "100.00", "100.00", false},
		{"compare-at below price", "100.00", "80.00", false},
		{"compare-at absent", "80.00", "", false},
		{"price absent", "", "100.00", false},
		{"both absent", "", "", false},
		{"unparsable compare-at", "80.00", "n/a", false},
		{"thousands separators", "1,000.00", "1,200.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := shopify.Variant{Price: shopify.Money(tt.price), CompareAtPrice: shopify.Money(tt.compareAt)}
			signal := ClassifyPromo(v, shopify.Product{}, CityJeddah, cfg)
			assert.Equal(t, tt.promo, signal.Promo)
		})
	}
}

func TestClassifyPromoByPriceKeepsAmounts(t *testing.T) {
	cfg := Config{PromoSource: PromoByPrice}

	v := shopify.Variant{Price: "80.00", CompareAtPrice: "100.00"}
	signal := ClassifyPromo(v, shopify.Product{}, CityJeddah, cfg)
	assert.Equal(t, Amount(80), signal.Price)
	assert.Equal(t, Amount(100), signal.CompareAt)

	v = shopify.Variant{Price: "80.00"}
	signal = ClassifyPromo(v, shopify.Product{}, CityJeddah, cfg)
	assert.Equal(t, Amount(80), signal.Price)
	assert.True(t, signal.CompareAt.IsNaN())
}

func TestClassifyPromoByMetafield(t *testing.T) {
	cfg := Config{
		PromoSource:             PromoByMetafield,
		PromoMetafieldNamespace: "custom",
		PromoMetafieldKey:       "on_deal",
	}

	tests := []struct {
		name  string
		value string
		promo bool
	}{
		{"true", "true", true},
		{"TRUE", "TRUE", true},
		{"one", "1", true},
		{"padded true", "  true  ", true},
		{"false", "false", false},
		{"zero", "0", false},
		{"yes is not truthy", "yes", false},
		{"empty value", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := shopify.Variant{
				Metafields: []shopify.Metafield{{Namespace: "custom", Key: "on_deal", Value: tt.value}},
			}
			signal := ClassifyPromo(v, shopify.Product{}, CityRiyadh, cfg)
			assert.Equal(t, tt.promo, signal.Promo)
		})
	}

	t.Run("missing metafield", func(t *testing.T) {
		signal := ClassifyPromo(shopify.Variant{}, shopify.Product{}, CityRiyadh, cfg)
		assert.False(t, signal.Promo)
	})
}

func TestClassifyPromoByTag(t *testing.T) {
	cfg := Config{PromoSource: PromoByTag}

	tests := []struct {
		name  string
		tags  string
		city  City
		promo bool
	}{
		{"matching city tag", "summer, deal-jeddah, new", CityJeddah, true},
		{"case insensitive", "DEAL-JEDDAH", CityJeddah, true},
		{"tag for a different city", "deal-riyadh", CityJeddah, false},
		{"city scoped per variant", "deal-riyadh", CityRiyadh, true},
		{"no deal tags", "summer, new", CityJeddah, false},
		{"empty tags", "", CityJeddah, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := shopify.Product{Tags: tt.tags}
			signal := ClassifyPromo(shopify.Variant{}, p, tt.city, cfg)
			assert.Equal(t, tt.promo, signal.Promo)
			assert.True(t, signal.Price.IsNaN(), "tag strategy carries no price diagnostics")
		})
	}
}

func TestAmountJSON(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		expected string
	}{
		{"present amount", Amount(80), "80"},
		{"absent amount is null", NoAmount(), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.amount.MarshalJSON()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, string(b))
		})
	}
}

func TestParseSources(t *testing.T) {
	assert.Equal(t, CityFromMetafield, ParseCitySource("metafield"))
	assert.Equal(t, CityFromTitle, ParseCitySource("title"))
	assert.Equal(t, CityFromTitle, ParseCitySource(""))
	assert.Equal(t, CityFromTitle, ParseCitySource("bogus"))

	assert.Equal(t, PromoByMetafield, ParsePromoSource("metafield"))
	assert.Equal(t, PromoByTag, ParsePromoSource("tag"))
	assert.Equal(t, PromoByPrice, ParsePromoSource("price"))
	assert.Equal(t, PromoByPrice, ParsePromoSource(""))
	assert.Equal(t, PromoByPrice, ParsePromoSource("bogus"))
}

package promo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"dealsync/internal/services/shopify"
)

// City is a normalized delivery city derived from a variant.
type City string

const (
	CityJeddah City = "jeddah"
	CityRiyadh City = "riyadh"
	CityDammam City = "dammam"

	// CityUnknown marks a variant whose city could not be recognized.
	// Such variants are dropped before planning.
	CityUnknown City = ""
)

// cityFragments lists, per city, the normalized substrings that classify to
// it. The near-miss spellings have all been observed in live variant titles.
var cityFragments = []struct {
	city      City
	fragments []string
}{
	{CityJeddah, []string{"jeddah", "jedddah", "jedah"}},
	{CityRiyadh, []string{"riyadh", "riyad", "riadh"}},
	{CityDammam, []string{"dammam", "damam"}},
}

// Amount is a diagnostic price value. NaN marks an absent or unparsable
// amount and marshals as JSON null.
type Amount float64

// NoAmount is the absent/unparsable Amount.
func NoAmount() Amount { return Amount(math.NaN()) }

func (a Amount) IsNaN() bool { return math.IsNaN(float64(a)) }

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsNaN() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(a))
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = NoAmount()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Signal is the promo outcome for one variant. Price and CompareAt are the
// raw amounts the decision was based on, kept for observability.
type Signal struct {
	Promo     bool
	Price     Amount
	CompareAt Amount
}

// Normalize lowercases, collapses runs of whitespace and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeCity classifies free text into a known city via substring match
// on the normalized form. Text matching no fragment is CityUnknown.
func NormalizeCity(s string) City {
	n := Normalize(s)
	if n == "" {
		return CityUnknown
	}
	for _, entry := range cityFragments {
		for _, fragment := range entry.fragments {
			if strings.Contains(n, fragment) {
				return entry.city
			}
		}
	}
	return CityUnknown
}

// ClassifyCity derives the variant's city from the configured source.
// In metafield mode a present, non-empty metafield value is authoritative
// even when it classifies to no known city; the title is only consulted
// when the metafield is missing or empty.
func ClassifyCity(v shopify.Variant, cfg Config) City {
	if cfg.CitySource == CityFromMetafield {
		if mf, ok := findMetafield(v.Metafields, cfg.CityMetafieldNamespace, cfg.CityMetafieldKey); ok && mf.Value != "" {
			return NormalizeCity(mf.Value)
		}
	}
	return NormalizeCity(v.Title)
}

// ClassifyPromo derives the promo signal for a variant using the single
// strategy selected by cfg. Strategies are never mixed.
func ClassifyPromo(v shopify.Variant, p shopify.Product, city City, cfg Config) Signal {
	switch cfg.PromoSource {
	case PromoByMetafield:
		promo := false
		if mf, ok := findMetafield(v.Metafields, cfg.PromoMetafieldNamespace, cfg.PromoMetafieldKey); ok {
			val := Normalize(mf.Value)
			promo = val == "true" || val == "1"
		}
		return Signal{
			Promo:     promo,
			Price:     ParseAmount(v.Price.String()),
			CompareAt: ParseAmount(v.CompareAtPrice.String()),
		}
	case PromoByTag:
		return Signal{
			Promo:     strings.Contains(Normalize(p.Tags), "deal-"+string(city)),
			Price:     NoAmount(),
			CompareAt: NoAmount(),
		}
	default: // PromoByPrice
		price := ParseAmount(v.Price.String())
		cap := ParseAmount(v.CompareAtPrice.String())
		return Signal{
			Promo:     !price.IsNaN() && !cap.IsNaN() && cap > price,
			Price:     price,
			CompareAt: cap,
		}
	}
}

// ParseAmount parses a decimal-as-text amount, tolerating thousands
// separators. Empty or unparsable input yields the absent Amount.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return NoAmount()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return NoAmount()
	}
	return Amount(f)
}

func findMetafield(metafields []shopify.Metafield, namespace, key string) (shopify.Metafield, bool) {
	for _, mf := range metafields {
		if mf.Namespace == namespace && mf.Key == key {
			return mf, true
		}
	}
	return shopify.Metafield{}, false
}

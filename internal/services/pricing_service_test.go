// internal/services/pricing_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestPriceKnownNiche(t *testing.T) {
	service := NewPricingService(false)

	suggestion := service.SuggestPrice("fitness", 100, "BRL")

	assert.Equal(t, 90.0, suggestion.SuggestedPrice)
	assert.Equal(t, 0.9, suggestion.MarketAnalysis.Multiplier)
	assert.Equal(t, "high", suggestion.MarketAnalysis.Confidence)
	assert.Equal(t, "stable", suggestion.MarketAnalysis.MarketTrend)
	assert.Equal(t, "BRL", suggestion.Currency)

	assert.Equal(t, 45.0, suggestion.PriceRange.Budget)
	assert.Equal(t, 81.0, suggestion.PriceRange.Standard)
	assert.Equal(t, 117.0, suggestion.PriceRange.Premium)
	assert.Equal(t, 180.0, suggestion.PriceRange.Luxury)

	require.Len(t, suggestion.Recommendations, 4)
	assert.Contains(t, suggestion.Recommendations[0], "Preço otimizado para conversão")
}

func TestSuggestPriceNicheIsCaseInsensitive(t *testing.T) {
	service := NewPricingService(false)

	suggestion := service.SuggestPrice("Finance", 100, "USD")

	assert.Equal(t, 150.0, suggestion.SuggestedPrice)
	assert.Equal(t, "growing", suggestion.MarketAnalysis.MarketTrend)
}

func TestSuggestPriceUnknownNiche(t *testing.T) {
	service := NewPricingService(false)

	suggestion := service.SuggestPrice("woodworking", 200, "BRL")

	assert.Equal(t, 200.0, suggestion.SuggestedPrice)
	assert.Equal(t, 1.0, suggestion.MarketAnalysis.Multiplier)
	assert.Equal(t, "medium", suggestion.MarketAnalysis.Confidence)
	assert.Equal(t, "stable", suggestion.MarketAnalysis.MarketTrend)
}

func TestSuggestPriceStripeFlag(t *testing.T) {
	without := NewPricingService(false).SuggestPrice("fitness", 100, "BRL")
	assert.Empty(t, without.StripeIntegration)

	with := NewPricingService(true).SuggestPrice("fitness", 100, "BRL")
	assert.Equal(t, true, with.StripeIntegration["stripe_configured"])
}

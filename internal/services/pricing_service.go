// internal/services/pricing_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/offerforge/offerforge/internal/models"
)

// nicheMultipliers adjust a target price by market positioning. Niches
// not listed use 1.0.
var nicheMultipliers = map[string]float64{
	"digital marketing":    1.2,
	"fitness":              0.9,
	"business":             1.4,
	"health":               1.1,
	"education":            0.8,
	"technology":           1.3,
	"finance":              1.5,
	"lifestyle":            0.95,
	"relationships":        1.0,
	"personal development": 1.1,
}

// PricingService computes static market-informed price suggestions.
// The payment provider key is only reported as configured; no provider
// API calls are made.
type PricingService struct {
	stripeConfigured bool
}

// NewPricingService creates the pricing service.
func NewPricingService(stripeConfigured bool) *PricingService {
	return &PricingService{stripeConfigured: stripeConfigured}
}

// SuggestPrice derives a suggested price and positioning ranges from
// the niche multiplier table.
func (s *PricingService) SuggestPrice(niche string, targetPrice float64, currency string) *models.PriceSuggestion {
	multiplier, known := nicheMultipliers[strings.ToLower(niche)]
	if !known {
		multiplier = 1.0
	}

	suggested := targetPrice * multiplier

	confidence := "medium"
	if multiplier != 1.0 {
		confidence = "high"
	}

	trend := "stable"
	if multiplier > 1.0 {
		trend = "growing"
	}

	stripeData := map[string]any{}
	if s.stripeConfigured {
		stripeData["stripe_configured"] = true
	}

	return &models.PriceSuggestion{
		SuggestedPrice: round2(suggested),
		PriceRange: models.PriceRange{
			Budget:   round2(suggested * 0.5),
			Standard: round2(suggested * 0.9),
			Premium:  round2(suggested * 1.3),
			Luxury:   round2(suggested * 2.0),
		},
		MarketAnalysis: models.MarketAnalysis{
			Niche:       niche,
			Multiplier:  multiplier,
			Confidence:  confidence,
			MarketTrend: trend,
		},
		Currency: currency,
		Recommendations: []string{
			fmt.Sprintf("Preço otimizado para conversão: %s %v", currency, round2(suggested*0.9)),
			fmt.Sprintf("Preço premium para alta margem: %s %v", currency, round2(suggested*1.3)),
			fmt.Sprintf("Teste A/B sugerido: %s %v vs %s %v", currency, targetPrice, currency, round2(suggested)),
			fmt.Sprintf("Para mercado %s: variação ideal de %v a %v", niche, round2(suggested*0.7), round2(suggested*1.5)),
		},
		StripeIntegration: stripeData,
	}
}

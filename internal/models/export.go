// internal/models/export.go
package models

// Export type tokens accepted by the export endpoint.
const (
	ExportTypeZIP  = "zip"
	ExportTypePDF  = "pdf"
	ExportTypeHTML = "html"
	ExportTypeJSON = "json"
)

// ExportRequest selects the artifact kind for an export call.
type ExportRequest struct {
	ExportType    string `json:"export_type" binding:"required"`
	IncludeAssets bool   `json:"include_assets"`
}

// ExportResponse returns the artifact inline; FileData is base64 for
// binary formats. Artifacts are never persisted server-side.
type ExportResponse struct {
	Success  bool   `json:"success"`
	FileURL  string `json:"file_url,omitempty"`
	FileData string `json:"file_data,omitempty"`
	Message  string `json:"message"`
}

// WebhookProject is the project summary block of a webhook payload.
type WebhookProject struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Language Language      `json:"language"`
	Status   ProjectStatus `json:"status"`
}

// WebhookMaterials flags which material kinds exist on the project.
type WebhookMaterials struct {
	VSLAvailable         bool `json:"vsl_available"`
	EmailsAvailable      bool `json:"emails_available"`
	SocialAvailable      bool `json:"social_available"`
	LandingPageAvailable bool `json:"landing_page_available"`
}

// WebhookMetadata identifies the producing platform.
type WebhookMetadata struct {
	Platform   string `json:"platform"`
	Version    string `json:"version"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

// WebhookPayload is a compact notification for external integrations.
// Construction only; delivery is out of scope.
type WebhookPayload struct {
	Event     string           `json:"event"`
	Timestamp string           `json:"timestamp"`
	Project   WebhookProject   `json:"project"`
	Offer     *GeneratedOffer  `json:"offer,omitempty"`
	Materials WebhookMaterials `json:"materials"`
	Metadata  WebhookMetadata  `json:"metadata"`
}

// ProjectMetrics is the aggregate returned by the metrics endpoint.
type ProjectMetrics struct {
	TotalProjects       int     `json:"total_projects"`
	CompletedProjects   int     `json:"completed_projects"`
	AvgCompletionTime   float64 `json:"avg_completion_time"`
	AvgTimeToFirstAsset float64 `json:"avg_time_to_first_asset"`
	CompletionRate      float64 `json:"completion_rate"`
}

// PriceRange buckets a suggested price into positioning tiers.
type PriceRange struct {
	Budget   float64 `json:"budget"`
	Standard float64 `json:"standard"`
	Premium  float64 `json:"premium"`
	Luxury   float64 `json:"luxury"`
}

// MarketAnalysis explains how a price suggestion was derived.
type MarketAnalysis struct {
	Niche       string  `json:"niche"`
	Multiplier  float64 `json:"multiplier"`
	Confidence  string  `json:"confidence"`
	MarketTrend string  `json:"market_trend"`
}

// PriceSuggestion is the pricing endpoint response.
type PriceSuggestion struct {
	SuggestedPrice    float64        `json:"suggested_price"`
	PriceRange        PriceRange     `json:"price_range"`
	MarketAnalysis    MarketAnalysis `json:"market_analysis"`
	Currency          string         `json:"currency"`
	Recommendations   []string       `json:"recommendations"`
	StripeIntegration map[string]any `json:"stripe_integration"`
}

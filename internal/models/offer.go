// internal/models/offer.go
package models

// ProductBrief describes the product being sold: niche, promise and
// pricing target. Immutable once attached except via an explicit update.
type ProductBrief struct {
	Niche           string  `json:"niche"`
	AvatarID        string  `json:"avatar_id"`
	Promise         string  `json:"promise"`
	TargetPrice     float64 `json:"target_price"`
	Currency        string  `json:"currency"`
	AdditionalNotes string  `json:"additional_notes,omitempty"`
}

// PainPoint is one researched audience pain, weighted by frequency.
type PainPoint struct {
	Description string `json:"description"`
	Frequency   int    `json:"frequency"` // positive weight, defaults to 1
	Source      string `json:"source"`    // "manual", "csv", "review"
	Category    string `json:"category,omitempty"`
}

// PainResearch aggregates pain points plus raw review and FAQ texts.
type PainResearch struct {
	PainPoints  []PainPoint `json:"pain_points"`
	Reviews     []string    `json:"reviews"`
	FAQs        []string    `json:"faqs"`
	ManualInput string      `json:"manual_input,omitempty"`
	CSVData     string      `json:"csv_data,omitempty"`
}

// GeneratedOffer is the synthesized sales proposition. Regeneration
// overwrites the whole record; there is no merge.
type GeneratedOffer struct {
	Headline           string   `json:"headline"`
	MainPromise        string   `json:"main_promise"`
	ProofElements      []string `json:"proof_elements"` // at most 5
	Bonuses            []string `json:"bonuses"`        // at most 4
	Guarantees         []string `json:"guarantees"`     // at most 3
	PriceJustification string   `json:"price_justification"`
	UrgencyElements    []string `json:"urgency_elements"` // fixed 4-line template
}

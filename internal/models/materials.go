// internal/models/materials.go
package models

// Material kind tokens accepted by the materials generation endpoint.
const (
	MaterialVSL    = "vsl"
	MaterialEmails = "emails"
	MaterialSocial = "social"
)

// VSLScript is a video-sales-letter script assembled positionally from
// one model response.
type VSLScript struct {
	Title             string   `json:"title"`
	Hook              string   `json:"hook"`
	ProblemAgitation  string   `json:"problem_agitation"`
	SolutionIntro     string   `json:"solution_intro"`
	Benefits          []string `json:"benefits"`
	SocialProof       string   `json:"social_proof"`
	OfferPresentation string   `json:"offer_presentation"`
	Guarantee         string   `json:"guarantee"`
	CallToAction      string   `json:"call_to_action"`
	EstimatedDuration int      `json:"estimated_duration"` // seconds
	Language          Language `json:"language"`
}

// Email is one message of a nurture sequence.
type Email struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// EmailSequence always holds exactly 5 emails; shortfalls are padded
// with placeholders at generation time.
type EmailSequence struct {
	SequenceName string   `json:"sequence_name"`
	Emails       []Email  `json:"emails"`
	Language     Language `json:"language"`
}

// SocialContent is one social media post or story.
type SocialContent struct {
	Platform    string   `json:"platform"`     // instagram, facebook, linkedin
	ContentType string   `json:"content_type"` // post, story
	Content     string   `json:"content"`
	Hashtags    []string `json:"hashtags"`
	Language    Language `json:"language"`
}

// LandingPage is the rendered template bundle: three text blobs plus
// template metadata.
type LandingPage struct {
	TemplateName      string   `json:"template_name"`
	HTMLContent       string   `json:"html_content"`
	CSSContent        string   `json:"css_content"`
	JSContent         string   `json:"js_content"`
	IsMobileOptimized bool     `json:"is_mobile_optimized"`
	Language          Language `json:"language"`
	GeneratedAt       string   `json:"generated_at"`
}

// GeneratedMaterials groups the derivative assets. Each field is
// independently optional; regenerating one kind replaces that field only.
type GeneratedMaterials struct {
	VSLScript     *VSLScript      `json:"vsl_script,omitempty"`
	EmailSequence *EmailSequence  `json:"email_sequence,omitempty"`
	SocialContent []SocialContent `json:"social_content,omitempty"`
	LandingPage   *LandingPage    `json:"landing_page,omitempty"`
}

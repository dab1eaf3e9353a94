// internal/services/landing_service.go
package services

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"strings"
	"time"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/models"
	"github.com/offerforge/offerforge/internal/utils"
)

// Landing page template names.
const (
	TemplateMobileModern = "mobile_modern"
	TemplateClassic      = "classic"
)

type landingLabels struct {
	CallToAction string
	PriceLabel   string
	BonusesTitle string
	ProofTitle   string
	Guarantee    string
}

// LandingService renders template-driven HTML/CSS/JS bundles from an
// offer and brief. No model calls are involved; rendering is
// deterministic apart from the generation timestamp.
type LandingService struct {
	logger *utils.Logger
	labels map[models.Language]landingLabels
}

// NewLandingService creates the landing page renderer.
func NewLandingService() *LandingService {
	return &LandingService{
		logger: utils.GetLogger(),
		labels: map[models.Language]landingLabels{
			models.LanguagePTBR: {
				CallToAction: "QUERO COMEÇAR AGORA",
				PriceLabel:   "Por apenas",
				BonusesTitle: "Bônus Exclusivos",
				ProofTitle:   "Por que confiar",
				Guarantee:    "Garantia",
			},
			models.LanguageENUS: {
				CallToAction: "GET STARTED NOW",
				PriceLabel:   "For only",
				BonusesTitle: "Exclusive Bonuses",
				ProofTitle:   "Why trust us",
				Guarantee:    "Guarantee",
			},
		},
	}
}

func (s *LandingService) labelsFor(language models.Language) landingLabels {
	if l, ok := s.labels[language]; ok {
		return l
	}
	return s.labels[models.LanguagePTBR]
}

// Generate renders a landing page bundle. Unknown template names fall
// back to mobile_modern.
func (s *LandingService) Generate(offer *models.GeneratedOffer, brief *models.ProductBrief, templateName string, language models.Language) *models.LandingPage {
	if templateName != TemplateMobileModern && templateName != TemplateClassic {
		s.logger.Warnf("Unknown landing template %q, using %s", templateName, TemplateMobileModern)
		templateName = TemplateMobileModern
	}

	return &models.LandingPage{
		TemplateName:      templateName,
		HTMLContent:       s.renderHTML(offer, brief, language),
		CSSContent:        s.renderCSS(templateName),
		JSContent:         s.renderJS(),
		IsMobileOptimized: true,
		Language:          language,
		GeneratedAt:       time.Now().Format(time.RFC3339),
	}
}

func (s *LandingService) renderHTML(offer *models.GeneratedOffer, brief *models.ProductBrief, language models.Language) string {
	labels := s.labelsFor(language)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=%q>\n<head>\n", string(language))
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(offer.Headline))
	b.WriteString("<link rel=\"stylesheet\" href=\"styles.css\">\n")
	b.WriteString("</head>\n<body>\n")

	b.WriteString("<header class=\"hero\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(offer.Headline))
	fmt.Fprintf(&b, "<p class=\"promise\">%s</p>\n", html.EscapeString(offer.MainPromise))
	fmt.Fprintf(&b, "<a class=\"cta\" href=\"#checkout\">%s</a>\n", labels.CallToAction)
	b.WriteString("</header>\n")

	if len(offer.ProofElements) > 0 {
		b.WriteString("<section class=\"proof\">\n")
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", labels.ProofTitle)
		for _, proof := range offer.ProofElements {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(proof))
		}
		b.WriteString("</ul>\n</section>\n")
	}

	if len(offer.Bonuses) > 0 {
		b.WriteString("<section class=\"bonuses\">\n")
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", labels.BonusesTitle)
		for _, bonus := range offer.Bonuses {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(bonus))
		}
		b.WriteString("</ul>\n</section>\n")
	}

	b.WriteString("<section class=\"offer\" id=\"checkout\">\n")
	fmt.Fprintf(&b, "<p class=\"price\">%s <strong>%s %s</strong></p>\n",
		labels.PriceLabel, html.EscapeString(brief.Currency), FormatPrice(brief.TargetPrice))
	if offer.PriceJustification != "" {
		fmt.Fprintf(&b, "<p class=\"justification\">%s</p>\n", html.EscapeString(offer.PriceJustification))
	}
	for _, urgency := range offer.UrgencyElements {
		fmt.Fprintf(&b, "<p class=\"urgency\">%s</p>\n", html.EscapeString(urgency))
	}
	fmt.Fprintf(&b, "<a class=\"cta\" href=\"#\">%s</a>\n", labels.CallToAction)
	b.WriteString("</section>\n")

	if len(offer.Guarantees) > 0 {
		b.WriteString("<section class=\"guarantees\">\n")
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", labels.Guarantee)
		for _, guarantee := range offer.Guarantees {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(guarantee))
		}
		b.WriteString("</ul>\n</section>\n")
	}

	b.WriteString("<script src=\"script.js\"></script>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (s *LandingService) renderCSS(templateName string) string {
	base := `* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #1a1a2e; }
section, header { padding: 2rem 1.25rem; max-width: 720px; margin: 0 auto; }
h1 { font-size: 1.9rem; margin-bottom: 1rem; }
h2 { font-size: 1.4rem; margin-bottom: 0.75rem; }
ul { list-style: none; }
li { padding: 0.5rem 0; border-bottom: 1px solid #eee; }
.cta { display: block; text-align: center; padding: 1rem; margin-top: 1.5rem; border-radius: 8px; text-decoration: none; font-weight: 700; }
.price strong { font-size: 1.8rem; }
.urgency { font-size: 0.9rem; margin-top: 0.5rem; }
@media (min-width: 768px) { h1 { font-size: 2.6rem; } }
`

	if templateName == TemplateClassic {
		return base + `body { background: #fdfbf7; }
.hero { background: #16324f; color: #fff; text-align: center; }
.cta { background: #c8963e; color: #16324f; }
.urgency { color: #a63d40; }
`
	}

	return base + `body { background: #fff; }
.hero { background: linear-gradient(135deg, #5f27cd, #341f97); color: #fff; text-align: center; }
.cta { background: #feca57; color: #341f97; }
.urgency { color: #ee5253; }
`
}

func (s *LandingService) renderJS() string {
	return `document.querySelectorAll('a.cta').forEach(function (button) {
  button.addEventListener('click', function (event) {
    var target = document.querySelector(this.getAttribute('href'));
    if (target) {
      event.preventDefault();
      target.scrollIntoView({ behavior: 'smooth' });
    }
  });
});
`
}

// ExportZIP packs a landing page bundle into a ZIP archive and returns
// it base64-encoded. projectName becomes the root directory, with spaces
// replaced by underscores.
func (s *LandingService) ExportZIP(page *models.LandingPage, projectName string) (string, error) {
	root := strings.ReplaceAll(projectName, " ", "_")
	if root == "" {
		root = "landing_page"
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		root + "/index.html": page.HTMLContent,
		root + "/styles.css": page.CSSContent,
	}
	if page.JSContent != "" {
		files[root+"/script.js"] = page.JSContent
	}

	for _, name := range []string{root + "/index.html", root + "/styles.css", root + "/script.js"} {
		content, ok := files[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return "", apperrors.NewExportError("failed to assemble landing page archive", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			zw.Close()
			return "", apperrors.NewExportError("failed to assemble landing page archive", err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", apperrors.NewExportError("failed to finalize landing page archive", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// internal/services/export_service.go
package services

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/models"
	"github.com/offerforge/offerforge/internal/utils"
)

const (
	exportPlatform = "OfferForge"
	exportVersion  = "2.0.0"
)

// ExportService packages a project into downloadable artifacts. All
// artifacts are assembled in memory and returned base64-encoded; nothing
// is persisted server-side.
type ExportService struct {
	apiMetrics *utils.APIMetrics
	logger     *utils.Logger
}

// NewExportService creates the export packager.
func NewExportService() *ExportService {
	return &ExportService{
		apiMetrics: utils.NewAPIMetrics(),
		logger:     utils.GetLogger(),
	}
}

// pdfWriter wraps gofpdf with the document's recurring text styles.
// cp1252 covers the Portuguese character set via the translator.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFWriter() *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()
	return &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (w *pdfWriter) heading1(text string) {
	w.pdf.SetFont("Helvetica", "B", 24)
	w.pdf.SetTextColor(33, 37, 41)
	w.pdf.MultiCell(0, 11, w.tr(text), "", "L", false)
	w.pdf.Ln(8)
}

func (w *pdfWriter) heading2(text string) {
	w.pdf.SetFont("Helvetica", "B", 18)
	w.pdf.SetTextColor(73, 80, 87)
	w.pdf.MultiCell(0, 9, w.tr(text), "", "L", false)
	w.pdf.Ln(5)
}

func (w *pdfWriter) label(text string) {
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.SetTextColor(33, 37, 41)
	w.pdf.MultiCell(0, 6, w.tr(text), "", "L", false)
}

func (w *pdfWriter) body(text string) {
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.SetTextColor(33, 37, 41)
	w.pdf.MultiCell(0, 6, w.tr(text), "", "L", false)
	w.pdf.Ln(3)
}

func (w *pdfWriter) highlight(text string) {
	w.pdf.SetFont("Helvetica", "B", 14)
	w.pdf.SetTextColor(0, 122, 255)
	w.pdf.SetDrawColor(0, 122, 255)
	w.pdf.MultiCell(0, 8, w.tr(text), "1", "L", false)
	w.pdf.Ln(5)
}

func (w *pdfWriter) bullet(text string) {
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.SetTextColor(33, 37, 41)
	w.pdf.MultiCell(0, 6, w.tr("- "+text), "", "L", false)
}

func (w *pdfWriter) pageBreak() {
	w.pdf.AddPage()
}

// ExportPDF renders the full project report as a base64-encoded PDF.
// Absent fields are omitted rather than rendered as placeholders.
func (s *ExportService) ExportPDF(project *models.Project) (string, error) {
	w := newPDFWriter()

	w.heading1("OfferForge - Projeto Completo")
	if project.Name != "" {
		w.heading2("Projeto: " + project.Name)
	}
	w.body("Gerado em: " + time.Now().Format("02/01/2006 às 15:04"))

	if brief := project.Brief; brief != nil {
		w.heading2("Brief do Produto")
		w.body("Nicho: " + brief.Niche)
		w.body("Promessa: " + brief.Promise)
		w.body(fmt.Sprintf("Preço-alvo: %s %s", brief.Currency, FormatPrice(brief.TargetPrice)))
	}

	if offer := project.GeneratedOffer; offer != nil {
		w.pageBreak()
		w.heading2("Oferta Gerada pela IA")

		w.label("Headline:")
		w.highlight(offer.Headline)

		w.label("Promessa Principal:")
		w.body(offer.MainPromise)

		if len(offer.ProofElements) > 0 {
			w.label("Elementos de Prova:")
			for _, proof := range offer.ProofElements {
				w.bullet(proof)
			}
			w.pdf.Ln(3)
		}

		if len(offer.Bonuses) > 0 {
			w.label("Bônus:")
			for _, bonus := range offer.Bonuses {
				w.bullet(bonus)
			}
			w.pdf.Ln(3)
		}

		if len(offer.Guarantees) > 0 {
			w.label("Garantias:")
			for _, guarantee := range offer.Guarantees {
				w.bullet(guarantee)
			}
			w.pdf.Ln(3)
		}

		if offer.PriceJustification != "" {
			w.label("Justificativa de Preço:")
			w.body(offer.PriceJustification)
		}
	}

	materials := project.Materials

	if materials != nil && materials.VSLScript != nil {
		vsl := materials.VSLScript
		w.pageBreak()
		w.heading2("Roteiro VSL")
		w.body("Título: " + vsl.Title)
		w.body(fmt.Sprintf("Duração estimada: %d segundos", vsl.EstimatedDuration))

		sections := []struct {
			name    string
			content string
		}{
			{"Hook Inicial", vsl.Hook},
			{"Agitação do Problema", vsl.ProblemAgitation},
			{"Introdução da Solução", vsl.SolutionIntro},
			{"Prova Social", vsl.SocialProof},
			{"Apresentação da Oferta", vsl.OfferPresentation},
			{"Garantia", vsl.Guarantee},
			{"Call-to-Action", vsl.CallToAction},
		}
		for _, section := range sections {
			if section.content == "" {
				continue
			}
			w.label(section.name + ":")
			w.body(section.content)
		}
	}

	if materials != nil && materials.EmailSequence != nil {
		w.pageBreak()
		w.heading2("Sequência de E-mails")

		emails := materials.EmailSequence.Emails
		if len(emails) > 5 {
			emails = emails[:5]
		}
		for i, email := range emails {
			w.label(fmt.Sprintf("E-mail %d:", i+1))
			w.body("Assunto: " + email.Subject)
			w.label("Conteúdo:")
			w.body(email.Content)
		}
	}

	if materials != nil && len(materials.SocialContent) > 0 {
		w.pageBreak()
		w.heading2("Conteúdo para Redes Sociais")

		posts := materials.SocialContent
		if len(posts) > 6 {
			posts = posts[:6]
		}
		for i, post := range posts {
			w.label(fmt.Sprintf("Post %d (%s):", i+1, titleCase(post.Platform)))
			w.body(post.Content)
			if len(post.Hashtags) > 0 {
				w.body("Hashtags: " + strings.Join(post.Hashtags, " "))
			}
		}
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return "", apperrors.NewExportError("failed to render PDF", err)
	}

	s.apiMetrics.RecordExport(models.ExportTypePDF, buf.Len())
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// jsonEnvelope is the integration export shape. Field order is the wire
// contract; absent records serialize as empty objects.
type jsonEnvelope struct {
	ProjectInfo    jsonProjectInfo `json:"project_info"`
	Brief          interface{}     `json:"brief"`
	GeneratedOffer interface{}     `json:"generated_offer"`
	Materials      interface{}     `json:"materials"`
	ExportMetadata jsonMetadata    `json:"export_metadata"`
}

type jsonProjectInfo struct {
	Name       string `json:"name"`
	Language   string `json:"language"`
	Status     string `json:"status"`
	ExportedAt string `json:"exported_at"`
}

type jsonMetadata struct {
	Platform string `json:"platform"`
	Version  string `json:"version"`
	Format   string `json:"format"`
}

// ExportJSON serializes the project into the fixed integration envelope.
// Non-ASCII text is emitted verbatim.
func (s *ExportService) ExportJSON(project *models.Project) (string, error) {
	envelope := jsonEnvelope{
		ProjectInfo: jsonProjectInfo{
			Name:       project.Name,
			Language:   string(project.Language),
			Status:     string(project.Status),
			ExportedAt: time.Now().Format(time.RFC3339),
		},
		Brief:          orEmpty(project.Brief),
		GeneratedOffer: orEmpty(project.GeneratedOffer),
		Materials:      orEmpty(project.Materials),
		ExportMetadata: jsonMetadata{
			Platform: exportPlatform,
			Version:  exportVersion,
			Format:   "json",
		},
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return "", apperrors.NewExportError("failed to serialize project", err)
	}

	s.apiMetrics.RecordExport(models.ExportTypeJSON, buf.Len())
	return strings.TrimRight(buf.String(), "\n"), nil
}

// WebhookPayload builds the notification document for external
// integrations. Delivery is the caller's concern.
func (s *ExportService) WebhookPayload(project *models.Project, webhookURL string) models.WebhookPayload {
	materials := project.Materials

	flags := models.WebhookMaterials{}
	if materials != nil {
		flags.VSLAvailable = materials.VSLScript != nil
		flags.EmailsAvailable = materials.EmailSequence != nil
		flags.SocialAvailable = len(materials.SocialContent) > 0
		flags.LandingPageAvailable = materials.LandingPage != nil
	}

	return models.WebhookPayload{
		Event:     "project_completed",
		Timestamp: time.Now().Format(time.RFC3339),
		Project: models.WebhookProject{
			ID:       project.ID,
			Name:     project.Name,
			Language: project.Language,
			Status:   project.Status,
		},
		Offer:     project.GeneratedOffer,
		Materials: flags,
		Metadata: models.WebhookMetadata{
			Platform:   exportPlatform,
			Version:    exportVersion,
			WebhookURL: webhookURL,
		},
	}
}

// ExportZIP builds the complete package: landing page bundle, PDF report,
// JSON envelope, one Markdown file per material, and a README, all under
// a sanitized project-name root.
func (s *ExportService) ExportZIP(project *models.Project, includeLandingPage, includePDF, includeJSON bool) (string, error) {
	projectName := strings.ReplaceAll(project.Name, " ", "_")
	if projectName == "" {
		projectName = "OfferForge_Project"
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	writeFile := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	assemble := func() error {
		materials := project.Materials

		if includeLandingPage && materials != nil && materials.LandingPage != nil {
			page := materials.LandingPage
			if err := writeFile(projectName+"/landing_page/index.html", page.HTMLContent); err != nil {
				return err
			}
			if err := writeFile(projectName+"/landing_page/styles.css", page.CSSContent); err != nil {
				return err
			}
		}

		if includePDF {
			pdfBase64, err := s.ExportPDF(project)
			if err != nil {
				return err
			}
			pdfBytes, err := base64.StdEncoding.DecodeString(pdfBase64)
			if err != nil {
				return err
			}
			w, err := zw.Create(fmt.Sprintf("%s/%s_complete.pdf", projectName, projectName))
			if err != nil {
				return err
			}
			if _, err := w.Write(pdfBytes); err != nil {
				return err
			}
		}

		if includeJSON {
			jsonContent, err := s.ExportJSON(project)
			if err != nil {
				return err
			}
			if err := writeFile(fmt.Sprintf("%s/%s_materials.json", projectName, projectName), jsonContent); err != nil {
				return err
			}
		}

		if materials != nil && materials.VSLScript != nil {
			if err := writeFile(projectName+"/materials/vsl_script.md", vslMarkdown(project, materials.VSLScript)); err != nil {
				return err
			}
		}

		if materials != nil && materials.EmailSequence != nil {
			emails := materials.EmailSequence.Emails
			if len(emails) > 5 {
				emails = emails[:5]
			}
			for i, email := range emails {
				name := fmt.Sprintf("%s/materials/email_%d.md", projectName, i+1)
				if err := writeFile(name, emailMarkdown(i+1, materials.EmailSequence.SequenceName, email)); err != nil {
					return err
				}
			}
		}

		if materials != nil && len(materials.SocialContent) > 0 {
			posts := materials.SocialContent
			if len(posts) > 6 {
				posts = posts[:6]
			}
			for i, post := range posts {
				name := fmt.Sprintf("%s/materials/social_post_%d.md", projectName, i+1)
				if err := writeFile(name, socialMarkdown(i+1, post)); err != nil {
					return err
				}
			}
		}

		return writeFile(projectName+"/README.md", readmeMarkdown(project))
	}

	if err := assemble(); err != nil {
		zw.Close()
		return "", apperrors.NewExportError("failed to assemble export package", err)
	}

	if err := zw.Close(); err != nil {
		return "", apperrors.NewExportError("failed to finalize export package", err)
	}

	s.apiMetrics.RecordExport(models.ExportTypeZIP, buf.Len())
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func vslMarkdown(project *models.Project, vsl *models.VSLScript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Roteiro VSL - %s\n\n", project.Name)
	b.WriteString("## Informações Gerais\n")
	fmt.Fprintf(&b, "- Título: %s\n", vsl.Title)
	fmt.Fprintf(&b, "- Duração: %d segundos\n", vsl.EstimatedDuration)
	fmt.Fprintf(&b, "- Idioma: %s\n\n", project.Language)
	b.WriteString("## Roteiro\n\n")
	fmt.Fprintf(&b, "### Hook Inicial\n%s\n\n", vsl.Hook)
	fmt.Fprintf(&b, "### Agitação do Problema\n%s\n\n", vsl.ProblemAgitation)
	fmt.Fprintf(&b, "### Introdução da Solução\n%s\n\n", vsl.SolutionIntro)
	fmt.Fprintf(&b, "### Prova Social\n%s\n\n", vsl.SocialProof)
	fmt.Fprintf(&b, "### Apresentação da Oferta\n%s\n\n", vsl.OfferPresentation)
	fmt.Fprintf(&b, "### Garantia\n%s\n\n", vsl.Guarantee)
	fmt.Fprintf(&b, "### Call-to-Action\n%s\n", vsl.CallToAction)
	return b.String()
}

func emailMarkdown(number int, sequenceName string, email models.Email) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# E-mail %d - %s\n\n", number, sequenceName)
	fmt.Fprintf(&b, "## Assunto\n%s\n\n", email.Subject)
	fmt.Fprintf(&b, "## Conteúdo\n%s\n", email.Content)
	return b.String()
}

func socialMarkdown(number int, post models.SocialContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Post %d - %s\n\n", number, titleCase(post.Platform))
	fmt.Fprintf(&b, "## Conteúdo\n%s\n\n", post.Content)
	fmt.Fprintf(&b, "## Hashtags\n%s\n\n", strings.Join(post.Hashtags, " "))
	fmt.Fprintf(&b, "## Tipo de Conteúdo\n%s\n", post.ContentType)
	return b.String()
}

func readmeMarkdown(project *models.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", project.Name)
	b.WriteString("## Projeto gerado com OfferForge\n")
	fmt.Fprintf(&b, "Exportado em: %s\n\n", time.Now().Format("02/01/2006 às 15:04"))
	b.WriteString("## Conteúdo do pacote:\n")
	b.WriteString("- Relatório completo em PDF\n")
	b.WriteString("- Landing page (HTML/CSS)\n")
	b.WriteString("- Roteiro VSL\n")
	b.WriteString("- Sequência de e-mails\n")
	b.WriteString("- Posts para redes sociais\n")
	b.WriteString("- Dados em JSON para integrações\n\n")
	b.WriteString("## Como usar:\n")
	b.WriteString("1. Extraia todos os arquivos\n")
	b.WriteString("2. Revise e personalize o conteúdo\n")
	b.WriteString("3. Implemente em suas plataformas\n")
	b.WriteString("4. Use o JSON para integrações com APIs\n")
	return b.String()
}

func orEmpty(v interface{}) interface{} {
	switch value := v.(type) {
	case *models.ProductBrief:
		if value == nil {
			return struct{}{}
		}
	case *models.GeneratedOffer:
		if value == nil {
			return struct{}{}
		}
	case *models.GeneratedMaterials:
		if value == nil {
			return struct{}{}
		}
	}
	return v
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// internal/services/landing_service_test.go
package services

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerforge/offerforge/internal/models"
)

func TestLandingGenerate(t *testing.T) {
	service := NewLandingService()
	offer := testOffer()
	offer.UrgencyElements = []string{"Só hoje"}

	page := service.Generate(offer, testBrief(), TemplateMobileModern, models.LanguagePTBR)

	assert.Equal(t, TemplateMobileModern, page.TemplateName)
	assert.True(t, page.IsMobileOptimized)
	assert.NotEmpty(t, page.GeneratedAt)

	assert.Contains(t, page.HTMLContent, "Transforme seu corpo em 30 dias")
	assert.Contains(t, page.HTMLContent, "QUERO COMEÇAR AGORA")
	assert.Contains(t, page.HTMLContent, "BRL")
	assert.Contains(t, page.HTMLContent, "297")
	assert.Contains(t, page.HTMLContent, "id=\"checkout\"")
	assert.Contains(t, page.HTMLContent, "Só hoje")

	assert.Contains(t, page.CSSContent, "linear-gradient")
	assert.Contains(t, page.JSContent, "scrollIntoView")
}

func TestLandingGenerateEscapesHTML(t *testing.T) {
	service := NewLandingService()
	offer := testOffer()
	offer.Headline = "<script>alert(1)</script>"

	page := service.Generate(offer, testBrief(), TemplateClassic, models.LanguagePTBR)

	assert.NotContains(t, page.HTMLContent, "<script>alert(1)</script>")
	assert.Contains(t, page.HTMLContent, "&lt;script&gt;")
}

func TestLandingGenerateUnknownTemplateFallsBack(t *testing.T) {
	service := NewLandingService()

	page := service.Generate(testOffer(), testBrief(), "neon_disco", models.LanguagePTBR)

	assert.Equal(t, TemplateMobileModern, page.TemplateName)
}

func TestLandingGenerateEnglishLabels(t *testing.T) {
	service := NewLandingService()

	page := service.Generate(testOffer(), testBrief(), TemplateClassic, models.LanguageENUS)

	assert.Contains(t, page.HTMLContent, "GET STARTED NOW")
	assert.NotContains(t, page.HTMLContent, "QUERO COMEÇAR AGORA")
}

func TestLandingExportZIP(t *testing.T) {
	service := NewLandingService()
	page := service.Generate(testOffer(), testBrief(), TemplateMobileModern, models.LanguagePTBR)

	encoded, err := service.ExportZIP(page, "Projeto Fitness")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}
	assert.ElementsMatch(t, []string{
		"Projeto_Fitness/index.html",
		"Projeto_Fitness/styles.css",
		"Projeto_Fitness/script.js",
	}, names)
}

func TestLandingExportZIPEmptyName(t *testing.T) {
	service := NewLandingService()
	page := &models.LandingPage{HTMLContent: "<html></html>", CSSContent: "body {}"}

	encoded, err := service.ExportZIP(page, "")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	require.Len(t, reader.File, 2)
	assert.Equal(t, "landing_page/index.html", reader.File[0].Name)
}

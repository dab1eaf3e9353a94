// internal/services/content_parser.go
package services

import (
	"fmt"
	"strings"

	"github.com/offerforge/offerforge/internal/models"
)

// Model output is free text; these helpers carve it into structured
// records positionally. They never fail — shortfalls surface as shorter
// slices that callers backfill with canned fallbacks.

// ParseListLines splits raw output into trimmed lines, dropping blanks
// and markdown headings, capped at max entries.
func ParseListLines(raw string, max int) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
		if len(items) == max {
			break
		}
	}
	return items
}

// ParseSections splits raw output on blank lines into trimmed nonempty
// sections.
func ParseSections(raw string) []string {
	var sections []string
	for _, section := range strings.Split(raw, "\n\n") {
		section = strings.TrimSpace(section)
		if section != "" {
			sections = append(sections, section)
		}
	}
	return sections
}

// ParseEmails splits raw output on '---' separators into at most five
// emails. The first nonempty line of a segment is the subject, the
// remaining nonempty lines are the body. Empty segments are skipped;
// padding to a full sequence is the caller's job.
func ParseEmails(raw string) []models.Email {
	segments := strings.Split(raw, "---")
	if len(segments) > 5 {
		segments = segments[:5]
	}

	var emails []models.Email
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		var lines []string
		for _, line := range strings.Split(segment, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}

		subject := lines[0]
		content := segment
		if len(lines) > 1 {
			content = strings.Join(lines[1:], "\n")
		}

		emails = append(emails, models.Email{Subject: subject, Content: content})
	}
	return emails
}

// ParseVSLScript assembles a script from raw model output. Sections map
// positionally onto the structured slots; missing slots take canned
// fallbacks. The second return reports whether any fallback was used,
// so behavior under malformed output stays observable.
func ParseVSLScript(raw string, offer *models.GeneratedOffer, brief *models.ProductBrief, language models.Language, duration int, fallbacks FallbackTexts) (*models.VSLScript, bool) {
	sections := ParseSections(raw)
	usedFallback := false

	pick := func(idx int, fallback string) string {
		if idx < len(sections) {
			return sections[idx]
		}
		usedFallback = true
		return fallback
	}

	guarantee := fallbacks.Guarantee
	if len(offer.Guarantees) > 0 {
		guarantee = offer.Guarantees[0]
	} else {
		usedFallback = true
	}

	offerPresentation := RenderTemplate(fallbacks.OfferPresentation, map[string]string{
		"currency":     brief.Currency,
		"target_price": FormatPrice(brief.TargetPrice),
	})

	// The trailing call-to-action only comes from the response when it
	// carried more sections than the structured slots consume.
	callToAction := fallbacks.CallToAction
	if len(sections) > 5 {
		callToAction = sections[len(sections)-1]
	} else {
		usedFallback = true
	}

	benefits := offer.ProofElements
	if len(benefits) > 3 {
		benefits = benefits[:3]
	}

	return &models.VSLScript{
		Title:             offer.Headline,
		Hook:              pick(0, offer.Headline),
		ProblemAgitation:  pick(1, fallbacks.ProblemAgitation),
		SolutionIntro:     pick(2, fallbacks.SolutionIntro),
		Benefits:          benefits,
		SocialProof:       pick(3, fallbacks.SocialProof),
		OfferPresentation: pick(4, offerPresentation),
		Guarantee:         guarantee,
		CallToAction:      callToAction,
		EstimatedDuration: duration,
		Language:          language,
	}, usedFallback
}

// ParseEmailSequence assembles exactly five emails from raw model
// output, padding shortfalls with placeholders. The second return
// reports whether padding was needed.
func ParseEmailSequence(raw string, niche string, language models.Language, fallbacks FallbackTexts) (*models.EmailSequence, bool) {
	emails := ParseEmails(raw)

	usedFallback := len(emails) < 5
	for len(emails) < 5 {
		emails = append(emails, models.Email{
			Subject: fmt.Sprintf("Email %d - %s", len(emails)+1, niche),
			Content: fallbacks.EmailContent,
		})
	}

	return &models.EmailSequence{
		SequenceName: RenderTemplate(fallbacks.SequenceName, map[string]string{"niche": niche}),
		Emails:       emails,
		Language:     language,
	}, usedFallback
}

// ParseSocialPosts assembles up to six posts from raw model output,
// cycling platforms and content types positionally. The second return
// reports whether the response yielded fewer than six usable lines.
func ParseSocialPosts(raw string, niche string, language models.Language, fallbacks FallbackTexts) ([]models.SocialContent, bool) {
	platforms := []string{"instagram", "facebook", "linkedin", "instagram", "facebook", "linkedin"}
	contentTypes := []string{"post", "post", "post", "story", "story", "post"}
	hashtags := []string{"#" + strings.ToLower(niche), fallbacks.HashtagOffer, fallbacks.HashtagLimited}

	lines := ParseListLines(raw, 6)

	posts := make([]models.SocialContent, 0, len(lines))
	for i, line := range lines {
		posts = append(posts, models.SocialContent{
			Platform:    platforms[i],
			ContentType: contentTypes[i],
			Content:     line,
			Hashtags:    hashtags,
			Language:    language,
		})
	}
	return posts, len(posts) < 6
}

// PainContext flattens researched pains into a prompt fragment. Each
// description appears once per frequency unit so heavier pains dominate,
// capped at ten entries.
func PainContext(research *models.PainResearch) string {
	if research == nil {
		return ""
	}

	var weighted []string
	for _, pain := range research.PainPoints {
		frequency := pain.Frequency
		if frequency < 1 {
			frequency = 1
		}
		for i := 0; i < frequency && len(weighted) < 10; i++ {
			weighted = append(weighted, pain.Description)
		}
		if len(weighted) == 10 {
			break
		}
	}
	return strings.Join(weighted, ", ")
}

// ReviewsContext joins up to five raw reviews for prompt interpolation.
func ReviewsContext(research *models.PainResearch) string {
	if research == nil {
		return ""
	}
	return joinFirst(research.Reviews, 5)
}

// FAQContext joins up to five FAQ entries for prompt interpolation.
func FAQContext(research *models.PainResearch) string {
	if research == nil {
		return ""
	}
	return joinFirst(research.FAQs, 5)
}

func joinFirst(items []string, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	return strings.Join(items, " | ")
}

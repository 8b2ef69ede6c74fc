package serplens

import "math"

// ElementKey identifies one of the fixed vocabulary of detectable
// content elements.
type ElementKey string

// The closed vocabulary of content elements. Every page's element map
// holds exactly these keys; detectors never invent new ones.
const (
	ElementCTAButtons         ElementKey = "cta_buttons"
	ElementVideoEmbed         ElementKey = "video_embed"
	ElementFAQSection         ElementKey = "faq_section"
	ElementTestimonials       ElementKey = "testimonials"
	ElementCostPricing        ElementKey = "cost_pricing"
	ElementCandidacyQuiz      ElementKey = "candidacy_quiz"
	ElementBeforeAfterPhotos  ElementKey = "before_after_photos"
	ElementSurgeonCredentials ElementKey = "surgeon_credentials"
	ElementTechnologyNames    ElementKey = "technology_names"
	ElementFinancing          ElementKey = "financing"
	ElementOutcomeStatistics  ElementKey = "outcome_statistics"
	ElementTrustBadges        ElementKey = "trust_badges"
	ElementPressMentions      ElementKey = "press_mentions"
	ElementLiveChat           ElementKey = "live_chat"
	ElementOnlineScheduling   ElementKey = "online_scheduling"
	ElementGoogleReviewWidget ElementKey = "google_review_widget"
	ElementVideoTestimonials  ElementKey = "video_testimonials"
)

// ElementKeys returns the element vocabulary in canonical display order.
func ElementKeys() []ElementKey {
	return []ElementKey{
		ElementCTAButtons,
		ElementVideoEmbed,
		ElementFAQSection,
		ElementTestimonials,
		ElementCostPricing,
		ElementCandidacyQuiz,
		ElementBeforeAfterPhotos,
		ElementSurgeonCredentials,
		ElementTechnologyNames,
		ElementFinancing,
		ElementOutcomeStatistics,
		ElementTrustBadges,
		ElementPressMentions,
		ElementLiveChat,
		ElementOnlineScheduling,
		ElementGoogleReviewWidget,
		ElementVideoTestimonials,
	}
}

// ElementDisplayName maps element keys to report labels.
var ElementDisplayName = map[ElementKey]string{
	ElementCTAButtons:         "CTA Buttons",
	ElementVideoEmbed:         "Video Embed",
	ElementFAQSection:         "FAQ Section",
	ElementTestimonials:       "Testimonials/Reviews",
	ElementCostPricing:        "Cost/Pricing Section",
	ElementCandidacyQuiz:      "Candidacy Quiz/Self-Test",
	ElementBeforeAfterPhotos:  "Before/After Photos",
	ElementSurgeonCredentials: "Surgeon Credentials",
	ElementTechnologyNames:    "Technology Names",
	ElementFinancing:          "Financing/Payment Plans",
	ElementOutcomeStatistics:  "Statistical/Outcome Claims",
	ElementTrustBadges:        "Trust Badges/Awards",
	ElementPressMentions:      "Press Mentions/As Seen In",
	ElementLiveChat:           "Live Chat Widget",
	ElementOnlineScheduling:   "Online Scheduling Widget",
	ElementGoogleReviewWidget: "Google Review Widget",
	ElementVideoTestimonials:  "Video Testimonials",
}

// Element positions within the visible-text stream.
const (
	PositionEarly = "early"
	PositionMid   = "mid"
	PositionLate  = "late"
)

// Element is one detector's result for a page.
type Element struct {
	Present  bool   `json:"present"`
	Position string `json:"position,omitempty"`

	// Detector-specific metadata. Only the fields relevant to a given
	// key are populated.
	Texts     []string `json:"texts,omitempty"`     // cta_buttons
	Count     int      `json:"count,omitempty"`     // faq_section, video_testimonials
	Type      string   `json:"type,omitempty"`      // testimonials
	ExactText string   `json:"exactText,omitempty"` // surgeon_credentials
	Found     []string `json:"found,omitempty"`     // technology_names
	Claims    []string `json:"claims,omitempty"`    // outcome_statistics
}

// ElementMap holds one Element per vocabulary key.
type ElementMap map[ElementKey]Element

// HasMetadata reports whether the element carries partial evidence
// (captured text, matched keywords, or claims) despite not being marked
// present. The report renders these as partial.
func (e Element) HasMetadata() bool {
	return e.ExactText != "" || len(e.Found) > 0 || len(e.Claims) > 0
}

// ElementWeights are the content-richness weights per element.
// The score decision boundaries live here and nowhere else.
var ElementWeights = map[ElementKey]float64{
	ElementFAQSection:         1.5,
	ElementTestimonials:       1.2,
	ElementSurgeonCredentials: 1.2,
	ElementTechnologyNames:    1.2,
	ElementOutcomeStatistics:  1.2,
	ElementOnlineScheduling:   1.2,
	ElementCostPricing:        0.8,
	ElementCandidacyQuiz:      0.8,
	ElementBeforeAfterPhotos:  0.8,
	ElementVideoEmbed:         0.6,
	ElementVideoTestimonials:  0.6,
	ElementCTAButtons:         0.5,
	ElementFinancing:          0.5,
	ElementTrustBadges:        0.5,
	ElementGoogleReviewWidget: 0.5,
	ElementLiveChat:           0.3,
	ElementPressMentions:      0.4,
}

// RichnessScore computes the 0-10 content-richness score as a weighted
// sum of element presence, normalized by the total weight and rounded
// to one decimal. A nil or empty map scores 0. The score is a pure
// function of the element map: it does not depend on classification or
// on the order detectors ran.
func RichnessScore(elements ElementMap) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total, sum float64
	for key, weight := range ElementWeights {
		total += weight
		if elements[key].Present {
			sum += weight
		}
	}
	score := math.Round(sum/(total/10)*10) / 10
	return math.Min(10, score)
}

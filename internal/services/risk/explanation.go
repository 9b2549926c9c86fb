package risk

import "github.com/google/uuid"

// riskBucket coarsens the 1-10 overall score for user-facing text
type riskBucket string

const (
	bucketLow    riskBucket = "low"    // score <= 3
	bucketMedium riskBucket = "medium" // score <= 6
	bucketHigh   riskBucket = "high"   // score > 6
)

func bucketForScore(score int) riskBucket {
	switch {
	case score <= 3:
		return bucketLow
	case score <= 6:
		return bucketMedium
	default:
		return bucketHigh
	}
}

const defaultLanguage = "en"

// Canned explanations by language and risk bucket. Unknown languages fall
// back to English.
var explanations = map[string]map[riskBucket]string{
	"en": {
		bucketLow:    "Your portfolio risk is low. Your holdings are broadly stable, so large swings in value are unlikely.",
		bucketMedium: "Your portfolio risk is moderate. Expect some ups and downs; diversification keeps them manageable.",
		bucketHigh:   "Your portfolio risk is high. Your holdings can swing sharply in value; consider the recommendations to reduce risk.",
	},
	"es": {
		bucketLow:    "El riesgo de su cartera es bajo. Sus inversiones son estables y es poco probable que su valor cambie bruscamente.",
		bucketMedium: "El riesgo de su cartera es moderado. Habrá altibajos, pero la diversificación los mantiene controlados.",
		bucketHigh:   "El riesgo de su cartera es alto. El valor de sus inversiones puede variar bruscamente; revise las recomendaciones para reducir el riesgo.",
	},
}

var noAssessmentText = map[string]string{
	"en": "No risk assessment is available yet. Create a risk profile to get started.",
	"es": "Todavía no hay una evaluación de riesgo disponible. Cree un perfil de riesgo para empezar.",
}

// SimplifiedExplanation returns a short canned explanation of the user's
// cached risk level in the requested language. It never fails: with no
// cached assessment it returns a "no assessment available" sentinel.
func (s *Service) SimplifiedExplanation(userID uuid.UUID, language string) string {
	if _, ok := explanations[language]; !ok {
		language = defaultLanguage
	}

	assessment, ok := s.CachedAssessment(userID)
	if !ok {
		return noAssessmentText[language]
	}

	return explanations[language][bucketForScore(assessment.OverallRiskScore)]
}

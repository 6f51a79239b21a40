package quiz

// Tier is the qualitative bucket assigned to a final score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierPractice  Tier = "practice"
)

// Feedback is the end-of-session result shown to the player.
type Feedback struct {
	Tier    Tier
	Message string
	Score   int
	Total   int
}

const (
	msgExcellent = "Outstanding! You've mastered probability concepts!"
	msgGood      = "Great work! You understand probability well!"
	msgReview    = "Good attempt! Review probability concepts to improve."
	msgKeepGoing = "Keep practicing! Probability takes time to understand fully."
)

// Evaluate maps score out of total to a feedback tier. Thresholds are 90%,
// 70% and 50% of total, which is ≥9, ≥7 and ≥5 for a ten-item catalog.
func Evaluate(score, total int) Feedback {
	fb := Feedback{Score: score, Total: total}

	// Integer comparison keeps the boundaries exact.
	switch {
	case total > 0 && score*10 >= total*9:
		fb.Tier, fb.Message = TierExcellent, msgExcellent
	case total > 0 && score*10 >= total*7:
		fb.Tier, fb.Message = TierGood, msgGood
	case total > 0 && score*10 >= total*5:
		fb.Tier, fb.Message = TierPractice, msgReview
	default:
		fb.Tier, fb.Message = TierPractice, msgKeepGoing
	}
	return fb
}

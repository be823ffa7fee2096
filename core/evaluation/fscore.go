// Package evaluation provides precision/recall bookkeeping shared by
// the scoring packages.
package evaluation

// PrecisionRecall is a precision/recall pair.
type PrecisionRecall struct {
	precision float64
	recall    float64
}

// NewPrecisionRecall creates a PrecisionRecall.
func NewPrecisionRecall(precision, recall float64) PrecisionRecall {
	return PrecisionRecall{precision: precision, recall: recall}
}

// Precision returns the precision component.
func (pr PrecisionRecall) Precision() float64 {
	return pr.precision
}

// Recall returns the recall component.
func (pr PrecisionRecall) Recall() float64 {
	return pr.recall
}

// F1 returns the harmonic mean of precision and recall, or 0 when both
// components are 0.
func (pr PrecisionRecall) F1() float64 {
	if pr.precision+pr.recall == 0 {
		return 0
	}
	return 2 * pr.precision * pr.recall / (pr.precision + pr.recall)
}

// FScoreCounts accumulates true-positive, false-positive, and
// false-negative counts for a binary decision.
type FScoreCounts struct {
	truePositives  int
	falsePositives int
	falseNegatives int
}

// NewFScoreCounts creates an FScoreCounts from raw counts.
func NewFScoreCounts(truePositives, falsePositives, falseNegatives int) FScoreCounts {
	return FScoreCounts{
		truePositives:  truePositives,
		falsePositives: falsePositives,
		falseNegatives: falseNegatives,
	}
}

// TruePositives returns the true-positive count.
func (c FScoreCounts) TruePositives() int {
	return c.truePositives
}

// FalsePositives returns the false-positive count.
func (c FScoreCounts) FalsePositives() int {
	return c.falsePositives
}

// FalseNegatives returns the false-negative count.
func (c FScoreCounts) FalseNegatives() int {
	return c.falseNegatives
}

// PrecisionRecall derives precision and recall from the counts. A zero
// denominator yields 0 for that component.
func (c FScoreCounts) PrecisionRecall() PrecisionRecall {
	var precision, recall float64
	if c.truePositives+c.falsePositives > 0 {
		precision = float64(c.truePositives) / float64(c.truePositives+c.falsePositives)
	}
	if c.truePositives+c.falseNegatives > 0 {
		recall = float64(c.truePositives) / float64(c.truePositives+c.falseNegatives)
	}
	return NewPrecisionRecall(precision, recall)
}

// F1 returns the F1 score derived from the counts.
func (c FScoreCounts) F1() float64 {
	return c.PrecisionRecall().F1()
}

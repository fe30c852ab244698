package drill

// Tally counts what happened during a drill session. Counts are per
// atomic prompt: a sequence contributes one entry per drilled child.
type Tally struct {
	Drilled  int // prompts finished by a correct answer or a skip
	FirstTry int // correct on the first answer of the pass
	Missed   int // at least one wrong answer before finishing
	Skipped  int // finished with a skip command
	Revealed int // sequence children shown without asking
	Saves    int // successful mid-session checkpoints
}

// Accuracy returns the share of drilled prompts answered on the first try.
func (t Tally) Accuracy() float64 {
	if t.Drilled == 0 {
		return 0
	}
	return float64(t.FirstTry) / float64(t.Drilled)
}

package question

// Pass tracks the scoring state of one atomic question during a single
// interrogation pass. Only the first answer event of a pass moves the score.
type Pass struct {
	q      *Atomic
	scored bool
	missed bool
}

// NewPass starts a scoring pass over q. Score changes are applied to q.
func NewPass(q *Atomic) *Pass {
	return &Pass{q: q}
}

// Missed reports whether the pass has seen an incorrect answer.
func (p *Pass) Missed() bool {
	return p.missed
}

// Correct applies the raise rule: the streak grows by one and the score
// grows by the new streak. Ignored once the pass has been scored.
func (p *Pass) Correct() {
	if p.scored {
		return
	}
	p.scored = true
	p.q.PreviousRaise++
	p.q.Score += p.q.PreviousRaise
}

// Incorrect applies the decrement rule: the score drops by one and the
// streak shrinks by one, never below zero. Ignored once the pass has been
// scored.
func (p *Pass) Incorrect() {
	p.missed = true
	if p.scored {
		return
	}
	p.scored = true
	p.q.Score--
	if p.q.PreviousRaise > 0 {
		p.q.PreviousRaise--
	}
}

// SkipCorrect credits the question with a flat point without touching the
// streak.
func (p *Pass) SkipCorrect() {
	p.scored = true
	p.q.Score++
}

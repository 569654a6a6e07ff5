package quiz

import "fmt"

// Aggregator accumulates answers as the quiz view reports them.
// Answer content is opaque and not validated.
type Aggregator struct {
	answers Answers
}

// NewAggregator creates an empty Aggregator, optionally seeded with
// previously saved answers.
func NewAggregator(seed Answers) *Aggregator {
	a := &Aggregator{answers: make(Answers, len(seed))}
	for i, v := range seed {
		a.answers[i] = v
	}
	return a
}

// Record stores answer for question index, replacing any earlier answer.
func (a *Aggregator) Record(index int, answer Answer) error {
	if index < 0 {
		return fmt.Errorf("question index must be non-negative, got %d", index)
	}
	a.answers[index] = answer
	return nil
}

// Answer returns the recorded answer for index.
func (a *Aggregator) Answer(index int) (Answer, bool) {
	v, ok := a.answers[index]
	return v, ok
}

// Len returns the number of answered questions.
func (a *Aggregator) Len() int {
	return len(a.answers)
}

// Finalize returns a copy of the complete mapping.
func (a *Aggregator) Finalize() Answers {
	return a.answers.Clone()
}

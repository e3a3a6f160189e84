package confirmations

// StaticConfirmer gives the same answer to every prompt and remembers the
// prompts it saw
type StaticConfirmer struct {
	Answer  bool
	Prompts []string
}

// NewStaticConfirmer creates a confirmer that always answers answer
func NewStaticConfirmer(answer bool) *StaticConfirmer {
	return &StaticConfirmer{Answer: answer}
}

// Confirm records prompt and returns the fixed answer
func (s *StaticConfirmer) Confirm(prompt string) (bool, error) {
	s.Prompts = append(s.Prompts, prompt)
	return s.Answer, nil
}

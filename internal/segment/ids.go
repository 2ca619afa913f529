package segment

import "strconv"

// IDSequence hands out document-scoped question and section ids. A fresh
// sequence is created per ingestion run and passed through segmentation.
type IDSequence struct {
	question int
	section  int
}

func NewIDSequence() *IDSequence {
	return &IDSequence{}
}

// NextQuestion returns q_1, q_2, ...
func (s *IDSequence) NextQuestion() string {
	s.question++
	return "q_" + strconv.Itoa(s.question)
}

// NextSection returns section_1, section_2, ...
func (s *IDSequence) NextSection() string {
	s.section++
	return "section_" + strconv.Itoa(s.section)
}

// Issued reports how many question ids have been handed out.
func (s *IDSequence) Issued() int {
	return s.question
}

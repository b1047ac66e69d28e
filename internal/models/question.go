package models

import (
	"strconv"
	"strings"
)

// SecurityQuestion identifies one of the fixed recovery questions. It is
// persisted as its integer value.
type SecurityQuestion int

const (
	QuestionFirstPet SecurityQuestion = iota
	QuestionMovieCharacter
	QuestionFirstAddress
	QuestionFirstLove
)

var questionText = [...]string{
	QuestionFirstPet:       "What was the name of your first pet",
	QuestionMovieCharacter: "Who was your favourite movie character",
	QuestionFirstAddress:   "What was your first address",
	QuestionFirstLove:      "What was the name of your first love",
}

// SecurityQuestions returns every question in menu order.
func SecurityQuestions() []SecurityQuestion {
	qs := make([]SecurityQuestion, len(questionText))
	for i := range questionText {
		qs[i] = SecurityQuestion(i)
	}
	return qs
}

// Valid reports whether q is a member of the enumeration.
func (q SecurityQuestion) Valid() bool {
	return q >= 0 && int(q) < len(questionText)
}

func (q SecurityQuestion) String() string {
	if !q.Valid() {
		return "SecurityQuestion(" + strconv.Itoa(int(q)) + ")"
	}
	return questionText[q]
}

// ParseSecurityQuestion accepts a 1-based menu number or the exact question
// text. The second result is false when s names no question.
func ParseSecurityQuestion(s string) (SecurityQuestion, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		q := SecurityQuestion(n - 1)
		return q, q.Valid()
	}
	for i, text := range questionText {
		if s == text {
			return SecurityQuestion(i), true
		}
	}
	return -1, false
}

// NormalizeAnswer is applied to security answers before hashing and before
// verification, making them case and surrounding-whitespace insensitive.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

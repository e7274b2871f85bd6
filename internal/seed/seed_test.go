package seed

import (
	"testing"

	"github.com/yigit/quizapi/internal/pkg/validation"
)

func TestSampleExamIsValid(t *testing.T) {
	if sampleExam.name == "" {
		t.Fatal("sample exam needs a name")
	}
	if len(sampleExam.topics) == 0 {
		t.Fatal("sample exam needs topics")
	}

	for topic, questions := range sampleExam.topics {
		if len(questions) == 0 {
			t.Errorf("topic %q has no questions", topic)
		}
		for _, q := range questions {
			if q.text == "" || q.correct == "" {
				t.Errorf("topic %q has an incomplete question: %+v", topic, q)
			}
			if !validation.IsValidDifficulty(q.difficulty) {
				t.Errorf("question %q has invalid difficulty %q", q.text, q.difficulty)
			}
		}
	}
}

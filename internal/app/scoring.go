package app

import "quizroom/internal/domain"

// answerDelta is the flat scoring rule applied to regular submissions:
// a correct answer earns the question's marks, a wrong answer costs
// floor(marks * negativeMarkingValue / 100) when the quiz enables
// negative marking, and nothing otherwise.
func answerDelta(quiz *domain.Quiz, q *domain.Question, correct bool) int {
	if correct {
		return q.Marks
	}
	if quiz.HasNegativeMarking {
		return -(q.Marks * quiz.NegativeMarkingValue / 100)
	}
	return 0
}

// hostOverrideDelta is the separate formula used only when the host picks
// the correct option live: the host's own correct answer earns base marks
// plus a bonus proportional to the fraction of time that was left when
// they answered. It intentionally differs from answerDelta; the two rules
// coexist upstream and unifying them is a product decision, not ours.
func hostOverrideDelta(q *domain.Question, elapsedSec float64) int {
	if q.TimeLimitSec <= 0 {
		return q.Marks
	}
	remaining := float64(q.TimeLimitSec) - elapsedSec
	if remaining < 0 {
		remaining = 0
	}
	bonus := int(float64(q.Marks) * remaining / float64(q.TimeLimitSec))
	return q.Marks + bonus
}

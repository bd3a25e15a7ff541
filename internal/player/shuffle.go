package player

import (
	"math/rand"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// ShufflePlan computes the question and option permutations for one
// attempt, honoring the quiz shuffle flags. The plan is computed once
// at attempt start and persisted, so a resumed attempt keeps the same
// ordering.
func ShufflePlan(quiz *models.Quiz, rng *rand.Rand) (questionOrder []string, optionOrders map[string][]string) {
	questionOrder = make([]string, len(quiz.Questions))
	for i := range quiz.Questions {
		questionOrder[i] = quiz.Questions[i].ID
	}
	if quiz.ShuffleQuestions {
		rng.Shuffle(len(questionOrder), func(i, j int) {
			questionOrder[i], questionOrder[j] = questionOrder[j], questionOrder[i]
		})
	}

	optionOrders = map[string][]string{}
	if quiz.ShuffleOptions {
		for i := range quiz.Questions {
			if ids := shuffleableIDs(quiz.Questions[i]); len(ids) > 0 {
				rng.Shuffle(len(ids), func(x, y int) {
					ids[x], ids[y] = ids[y], ids[x]
				})
				optionOrders[quiz.Questions[i].ID] = ids
			}
		}
	}
	return questionOrder, optionOrders
}

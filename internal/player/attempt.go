package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// State is the attempt lifecycle position:
// answering -> submitting -> result_summary <-> result_review.
type State string

const (
	StateAnswering     State = "answering"
	StateSubmitting    State = "submitting"
	StateResultSummary State = "result_summary"
	StateResultReview  State = "result_review"
)

var (
	ErrNotAnswering     = errors.New("attempt is not accepting answers")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrNoResult         = errors.New("attempt has no result yet")
	ErrReviewDisabled   = errors.New("correct answers are not shown for this quiz")
	ErrRetakeDisabled   = errors.New("retake is not available")
)

// Completer is the external grading collaborator. The engine shapes
// the answer payload; scoring is entirely the collaborator's job.
type Completer interface {
	Complete(ctx context.Context, answers models.AnswerSet) (*models.QuizResult, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, answers models.AnswerSet) (*models.QuizResult, error)

func (f CompleterFunc) Complete(ctx context.Context, answers models.AnswerSet) (*models.QuizResult, error) {
	return f(ctx, answers)
}

// Attempt administers one run of a quiz for one learner.
type Attempt struct {
	mu sync.Mutex

	quiz      *models.Quiz
	questions []models.Question
	// optionOrders fixes the per-question option/item order for the
	// whole attempt when the quiz shuffles options.
	optionOrders map[string][]string

	answers models.AnswerSet
	current int
	state   State
	result  *models.QuizResult

	countdown *Countdown
	// autoSubmitted consumes the expiry edge so it cannot re-fire.
	autoSubmitted bool
	isSubmitting  bool

	complete Completer
	onRetake func()
	logger   *slog.Logger
	rng      *rand.Rand
}

// Option configures an attempt.
type Option func(*Attempt)

// WithRand injects the randomness source used for shuffling, so tests
// get deterministic permutations.
func WithRand(rng *rand.Rand) Option {
	return func(a *Attempt) { a.rng = rng }
}

// WithRetake supplies the retake handler; without one the retake
// action is unavailable even when the quiz allows it.
func WithRetake(handler func()) Option {
	return func(a *Attempt) { a.onRetake = handler }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Attempt) { a.logger = logger }
}

// NewAttempt prepares an attempt: the question order and per-question
// option orders are fixed here, once, and never reshuffled.
func NewAttempt(quiz *models.Quiz, complete Completer, opts ...Option) *Attempt {
	a := &Attempt{
		quiz:         quiz,
		answers:      models.AnswerSet{},
		state:        StateAnswering,
		complete:     complete,
		logger:       slog.Default(),
		optionOrders: map[string][]string{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a.questions = make([]models.Question, len(quiz.Questions))
	copy(a.questions, quiz.Questions)
	if quiz.ShuffleQuestions {
		a.rng.Shuffle(len(a.questions), func(i, j int) {
			a.questions[i], a.questions[j] = a.questions[j], a.questions[i]
		})
	}
	if quiz.ShuffleOptions {
		for i := range a.questions {
			if ids := shuffleableIDs(a.questions[i]); len(ids) > 0 {
				a.rng.Shuffle(len(ids), func(x, y int) {
					ids[x], ids[y] = ids[y], ids[x]
				})
				a.optionOrders[a.questions[i].ID] = ids
			}
		}
	}

	if quiz.TimeLimit != nil {
		a.countdown = NewCountdown(*quiz.TimeLimit * 60)
	}
	return a
}

// shuffleableIDs lists the ids whose display order may be shuffled
// for a question: choice options or drag item pools.
func shuffleableIDs(q models.Question) []string {
	switch q.Type {
	case models.SingleChoice, models.MultipleChoice:
		content, err := q.ChoiceContent()
		if err != nil {
			return nil
		}
		ids := make([]string, len(content.Options))
		for i, opt := range content.Options {
			ids[i] = opt.ID
		}
		return ids
	case models.DragFill:
		content, err := q.DragFillContent()
		if err != nil {
			return nil
		}
		ids := make([]string, len(content.Items))
		for i, item := range content.Items {
			ids[i] = item.ID
		}
		return ids
	case models.DragDrop:
		content, err := q.DragDropContent()
		if err != nil {
			return nil
		}
		ids := make([]string, len(content.Items))
		for i, item := range content.Items {
			ids[i] = item.ID
		}
		return ids
	default:
		return nil
	}
}

// Start launches the countdown, if the quiz is timed, and watches for
// expiry to auto-submit. Cancelling the context stops the timer, as
// when the learner navigates away.
func (a *Attempt) Start(ctx context.Context) {
	if a.countdown == nil {
		return
	}
	a.countdown.Start(ctx)
	go func() {
		select {
		case <-ctx.Done():
		case <-a.countdown.Stopped():
		case <-a.countdown.Expired():
			a.handleExpiry(ctx)
		}
	}()
}

// Tick advances the countdown by one second without wall-clock time;
// the timer-driven loop and tests share this path. Expiry triggers
// exactly one automatic submission.
func (a *Attempt) Tick(ctx context.Context) {
	if a.countdown == nil {
		return
	}
	if a.countdown.Tick() {
		a.handleExpiry(ctx)
	}
}

func (a *Attempt) handleExpiry(ctx context.Context) {
	a.mu.Lock()
	if a.autoSubmitted || a.state != StateAnswering {
		a.mu.Unlock()
		return
	}
	a.autoSubmitted = true
	a.mu.Unlock()

	a.logger.Info("quiz time expired, auto-submitting", "quiz_id", a.quiz.ID)
	if err := a.Submit(ctx); err != nil && !errors.Is(err, ErrAlreadySubmitted) {
		a.logger.Error("auto-submit failed", "quiz_id", a.quiz.ID, "error", err)
	}
}

// TimeRemaining reports the seconds left, or -1 for untimed quizzes.
func (a *Attempt) TimeRemaining() int {
	if a.countdown == nil {
		return -1
	}
	return a.countdown.Remaining()
}

// ===== NAVIGATION =====

// Questions returns the attempt's fixed question order.
func (a *Attempt) Questions() []models.Question {
	return a.questions
}

// OptionOrder returns the fixed display order for a question's
// options or items, or nil when the natural order applies.
func (a *Attempt) OptionOrder(questionID string) []string {
	return a.optionOrders[questionID]
}

// Current returns the question in focus.
func (a *Attempt) Current() *models.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.questions) == 0 {
		return nil
	}
	return &a.questions[a.current]
}

// CurrentIndex reports the focused position.
func (a *Attempt) CurrentIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Next moves focus forward; no-op at the last question.
func (a *Attempt) Next() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current < len(a.questions)-1 {
		a.current++
	}
}

// Prev moves focus backward; no-op at the first question.
func (a *Attempt) Prev() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current > 0 {
		a.current--
	}
}

// JumpTo focuses a question by index, as from the index strip.
func (a *Attempt) JumpTo(index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if index >= 0 && index < len(a.questions) {
		a.current = index
	}
}

// ===== ANSWERS =====

// Answer returns the captured answer for a question.
func (a *Attempt) Answer(questionID string) models.Answer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.answers[questionID]
}

// SetAnswer stores a new answer value for a question. Only the
// answering state accepts changes.
func (a *Attempt) SetAnswer(questionID string, answer models.Answer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateAnswering {
		return ErrNotAnswering
	}
	a.answers[questionID] = answer
	return nil
}

// Answers returns a copy of the full answer set.
func (a *Attempt) Answers() models.AnswerSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	answers := make(models.AnswerSet, len(a.answers))
	for id, answer := range a.answers {
		answers[id] = answer
	}
	return answers
}

// QuestionAnswered reports whether the question at index passes its
// type-specific emptiness rule.
func (a *Attempt) QuestionAnswered(index int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if index < 0 || index >= len(a.questions) {
		return false
	}
	q := a.questions[index]
	return IsAnswered(q, a.answers[q.ID])
}

// AnsweredCount reports how many questions are currently answered.
func (a *Attempt) AnsweredCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	count := 0
	for _, q := range a.questions {
		if IsAnswered(q, a.answers[q.ID]) {
			count++
		}
	}
	return count
}

// ===== SUBMISSION =====

// Submit hands the answers to the grading collaborator. The call is
// idempotent-guarded: a second submit while one is in flight, or
// after success, does not reach the collaborator. On failure the
// attempt stays in the answering state with its answers intact, so a
// retry needs no re-answering.
func (a *Attempt) Submit(ctx context.Context) error {
	a.mu.Lock()
	if a.state == StateResultSummary || a.state == StateResultReview {
		a.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if a.isSubmitting {
		a.mu.Unlock()
		return ErrAlreadySubmitted
	}
	a.isSubmitting = true
	a.state = StateSubmitting
	answers := make(models.AnswerSet, len(a.answers))
	for id, answer := range a.answers {
		answers[id] = answer
	}
	a.mu.Unlock()

	result, err := a.complete.Complete(ctx, answers)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.isSubmitting = false
	if err != nil {
		a.state = StateAnswering
		a.logger.Error("quiz submission failed", "quiz_id", a.quiz.ID, "error", err)
		return fmt.Errorf("failed to submit quiz: %w", err)
	}

	a.result = result
	a.state = StateResultSummary
	if a.countdown != nil {
		a.countdown.Stop()
	}
	return nil
}

// ===== RESULTS =====

// State reports the lifecycle position.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Result returns the graded outcome once available.
func (a *Attempt) Result() (*models.QuizResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result == nil {
		return nil, ErrNoResult
	}
	return a.result, nil
}

// EnterReview switches to review mode. Available only from the
// summary, and only when the quiz shows correct answers.
func (a *Attempt) EnterReview() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateResultSummary {
		return ErrNoResult
	}
	if !a.quiz.ShowCorrectAnswers {
		return ErrReviewDisabled
	}
	a.state = StateResultReview
	return nil
}

// ExitReview returns from review to the summary.
func (a *Attempt) ExitReview() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateResultReview {
		a.state = StateResultSummary
	}
}

// CanRetake reports whether the retake action is offered.
func (a *Attempt) CanRetake() bool {
	return a.quiz.AllowRetake && a.onRetake != nil
}

// Retake notifies the retake handler.
func (a *Attempt) Retake() error {
	if !a.CanRetake() {
		return ErrRetakeDisabled
	}
	a.onRetake()
	return nil
}

package dsl

import "github.com/tatianab/kastle/internal/models"

const (
	defaultQuestionText = "Default question"
	defaultAnswerText   = "Default answer"
)

// DialogueScope assembles the questions of a character's dialogue. The
// questions can be declared in any order.
type DialogueScope struct {
	lc lifecycle

	firstQuestion string
	questions     []models.Question
	items         []models.Item
}

// DialogueResult is a dialogue together with the reward items declared by
// its questions, in question declaration order.
type DialogueResult struct {
	Dialogue models.Dialogue
	Items    []models.Item
}

func NewDialogueScope() *DialogueScope {
	return &DialogueScope{
		lc:            newLifecycle("dialogue", ""),
		firstQuestion: models.DefaultQuestionID,
		questions:     []models.Question{},
		items:         []models.Item{},
	}
}

// FirstQuestion declares a question and makes it the entry point of the
// dialogue. A later call moves the entry point.
func (s *DialogueScope) FirstQuestion(questionID string, init func(*QuestionScope)) {
	s.lc.mustBeOpen("FirstQuestion")
	s.add(run(NewQuestionScope(questionID), init).Build())
	s.firstQuestion = questionID
}

// Question declares a question that is reached through an answer.
func (s *DialogueScope) Question(questionID string, init func(*QuestionScope)) {
	s.lc.mustBeOpen("Question")
	s.add(run(NewQuestionScope(questionID), init).Build())
}

func (s *DialogueScope) add(res QuestionResult) {
	s.questions = append(s.questions, res.Question)
	if res.Reward != nil {
		s.items = append(s.items, *res.Reward)
	}
}

func (s *DialogueScope) Build() DialogueResult {
	s.lc.seal()
	return DialogueResult{
		Dialogue: models.Dialogue{
			FirstQuestion: s.firstQuestion,
			Questions:     s.questions,
		},
		Items: s.items,
	}
}

// QuestionScope configures a single dialogue question.
type QuestionScope struct {
	lc lifecycle

	Text string

	answers []models.Answer
	reward  *models.Item
}

// QuestionResult is a question and the item it grants, if any.
type QuestionResult struct {
	Question models.Question
	Reward   *models.Item
}

func NewQuestionScope(questionID string) *QuestionScope {
	return &QuestionScope{
		lc:      newLifecycle("question", questionID),
		Text:    defaultQuestionText,
		answers: []models.Answer{},
	}
}

// Answer appends an answer to the question.
func (s *QuestionScope) Answer(init func(*AnswerScope)) {
	s.lc.mustBeOpen("Answer")
	s.answers = append(s.answers, run(NewAnswerScope(), init).Build())
}

// Reward declares the item granted when the question is reached. The item
// is created here and surfaces in the game's item list. A later call
// replaces the reward.
func (s *QuestionScope) Reward(itemID string, init func(*ItemScope)) {
	s.lc.mustBeOpen("Reward")
	item := run(NewItemScope(itemID), init).Build()
	s.reward = &item
}

func (s *QuestionScope) Build() QuestionResult {
	s.lc.seal()
	q := models.Question{
		ID:      s.lc.id,
		Text:    s.Text,
		Answers: s.answers,
	}
	if s.reward != nil {
		id := s.reward.ID
		q.Reward = &id
	}
	return QuestionResult{Question: q, Reward: s.reward}
}

// AnswerScope configures an answer. NextQuestion defaults to
// models.DefaultQuestionID, which ends the dialogue.
type AnswerScope struct {
	Text         string
	NextQuestion string

	built *models.Answer
}

func NewAnswerScope() *AnswerScope {
	return &AnswerScope{
		Text:         defaultAnswerText,
		NextQuestion: models.DefaultQuestionID,
	}
}

func (s *AnswerScope) Build() models.Answer {
	if s.built == nil {
		s.built = &models.Answer{Text: s.Text, NextQuestion: s.NextQuestion}
	}
	return *s.built
}

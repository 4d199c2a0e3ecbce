package catalog

import "quiz/pkg/quiz"

// Catalog is an immutable, ordered list of questions indexed by id.
type Catalog struct {
	questions []quiz.Question
	byID      map[int]int
}

// New validates questions and builds a catalog. An empty list yields an empty catalog.
func New(questions []quiz.Question) (*Catalog, error) {
	collector := &issueCollector{}
	validateQuestions(collector, questions)
	if err := collector.result(); err != nil {
		return nil, err
	}
	c := &Catalog{
		questions: make([]quiz.Question, 0, len(questions)),
		byID:      make(map[int]int, len(questions)),
	}
	for _, q := range questions {
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, cloneQuestion(q))
	}
	return c, nil
}

// Questions returns a copy of the catalog in order.
func (c *Catalog) Questions() []quiz.Question {
	out := make([]quiz.Question, 0, len(c.questions))
	for _, q := range c.questions {
		out = append(out, cloneQuestion(q))
	}
	return out
}

// Lookup returns the question with the given id.
func (c *Catalog) Lookup(id int) (quiz.Question, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return quiz.Question{}, false
	}
	return cloneQuestion(c.questions[idx]), true
}

// Len reports the number of questions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.questions)
}

func cloneQuestion(q quiz.Question) quiz.Question {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	q.Options = options
	return q
}

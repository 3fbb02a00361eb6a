package models

import "fmt"

// Result holds one recognized question together with its answer options,
// in the order they appeared on screen.
type Result struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// SearchQueries expands a result into the message body sent to clients:
// the question itself followed by one "question answer" query per answer.
func (r Result) SearchQueries() []string {
	queries := make([]string, 0, len(r.Answers)+1)
	queries = append(queries, r.Question)
	for _, a := range r.Answers {
		queries = append(queries, fmt.Sprintf("%s %s", r.Question, a))
	}
	return queries
}

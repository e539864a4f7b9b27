package search

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

var Fields = []string{"title", "content"}

type term struct {
	text    string
	phrase  bool
	exclude bool
}

// ParseQuery turns user input into a bleve query. Terms are ANDed, "+term" is
// required, "-term" and "NOT term" exclude, quoted text is matched as a phrase.
// Every term is looked up in all Fields. It returns nil when nothing is left to
// search for.
func ParseQuery(input string) query.Query {
	terms := tokenize(input)
	if len(terms) == 0 {
		return nil
	}

	q := bleve.NewBooleanQuery()
	positive := 0
	for _, t := range terms {
		fieldQueries := make([]query.Query, 0, len(Fields))
		for _, field := range Fields {
			fieldQueries = append(fieldQueries, fieldQuery(t, field))
		}
		disjunction := bleve.NewDisjunctionQuery(fieldQueries...)
		if t.exclude {
			q.AddMustNot(disjunction)
			continue
		}
		positive++
		q.AddMust(disjunction)
	}
	if positive == 0 {
		q.AddMust(bleve.NewMatchAllQuery())
	}
	return q
}

func fieldQuery(t term, field string) query.Query {
	if t.phrase {
		mq := bleve.NewMatchPhraseQuery(t.text)
		mq.SetField(field)
		return mq
	}
	mq := bleve.NewMatchQuery(t.text)
	mq.SetField(field)
	return mq
}

func tokenize(input string) []term {
	var terms []term
	negateNext := false
	runes := []rune(input)
	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		exclude := negateNext
		negateNext = false
		switch runes[i] {
		case '+':
			i++
		case '-':
			exclude = true
			i++
		}
		if i >= len(runes) {
			break
		}

		if runes[i] == '"' {
			end := i + 1
			for end < len(runes) && runes[end] != '"' {
				end++
			}
			text := strings.TrimSpace(string(runes[i+1 : end]))
			if text != "" {
				terms = append(terms, term{text: text, phrase: true, exclude: exclude})
			}
			i = end + 1
			continue
		}

		end := i
		for end < len(runes) && !unicode.IsSpace(runes[end]) {
			end++
		}
		word := string(runes[i:end])
		i = end
		if word == "" {
			continue
		}

		switch word {
		case "AND", "OR":
			// terms are always ANDed
			negateNext = exclude
			continue
		case "NOT":
			negateNext = true
			continue
		}
		terms = append(terms, term{text: word, exclude: exclude})
	}
	return terms
}

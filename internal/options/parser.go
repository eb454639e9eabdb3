package options

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	ErrUnknownOption   = errors.New("unknown argument")
	ErrMissingArgument = errors.New("missing argument value")
	ErrEmptyValue      = errors.New("empty value")
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint
const maxSuggestionDistance = 2

// Error is a parse failure tied to one command-line token
type Error struct {
	Kind       error
	Arg        string
	Suggestion string
}

func (e *Error) Error() string {
	var msg string
	switch {
	case errors.Is(e.Kind, ErrUnknownOption):
		msg = fmt.Sprintf("unknown argument: '%s'", e.Arg)
	case errors.Is(e.Kind, ErrMissingArgument):
		msg = fmt.Sprintf("missing argument value for '%s'", e.Arg)
	case errors.Is(e.Kind, ErrEmptyValue):
		msg = fmt.Sprintf("empty value in '%s'", e.Arg)
	default:
		msg = fmt.Sprintf("%v: '%s'", e.Kind, e.Arg)
	}

	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Parse turns raw tokens into an ordered ParsedArguments.
// The first structural problem aborts parsing.
func (t *Table) Parse(tokens []string) (*ParsedArguments, error) {
	parsed := &ParsedArguments{}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if token == "-" || !strings.HasPrefix(token, "-") {
			parsed.Options = append(parsed.Options, ParsedOption{Value: token})
			continue
		}

		opt := t.match(token)
		if opt == nil {
			return nil, &Error{Kind: ErrUnknownOption, Arg: token, Suggestion: t.suggest(token)}
		}

		switch opt.Kind {
		case KindRemaining:
			parsed.HasTerminator = true
			parsed.Tail = append([]string(nil), tokens[i+1:]...)
			return parsed, nil

		case KindFlag:
			parsed.Options = append(parsed.Options, ParsedOption{Option: opt})

		case KindJoined:
			parsed.Options = append(parsed.Options, ParsedOption{
				Option: opt,
				Value:  strings.TrimPrefix(token, opt.Spelling),
			})

		case KindSeparate:
			if i+1 >= len(tokens) {
				return nil, &Error{Kind: ErrMissingArgument, Arg: token}
			}
			i++
			parsed.Options = append(parsed.Options, ParsedOption{Option: opt, Value: tokens[i]})

		case KindJoinedOrSeparate:
			if token != opt.Spelling {
				parsed.Options = append(parsed.Options, ParsedOption{
					Option: opt,
					Value:  strings.TrimPrefix(token, opt.Spelling),
				})
				continue
			}

			if i+1 >= len(tokens) {
				return nil, &Error{Kind: ErrMissingArgument, Arg: token}
			}
			i++
			parsed.Options = append(parsed.Options, ParsedOption{Option: opt, Value: tokens[i]})

		case KindCommaJoined:
			rest := strings.TrimPrefix(token, opt.Spelling)
			values := strings.Split(rest, ",")
			if !opt.AllowEmptySegments {
				for _, v := range values {
					if v == "" {
						return nil, &Error{Kind: ErrEmptyValue, Arg: token}
					}
				}
			}
			parsed.Options = append(parsed.Options, ParsedOption{Option: opt, Values: values})

		default:
			return nil, &Error{Kind: ErrUnknownOption, Arg: token}
		}
	}

	return parsed, nil
}

// suggest returns the closest known spelling, or "" when nothing is close
func (t *Table) suggest(token string) string {
	spellings := t.spellings()

	ranks := fuzzy.RankFindFold(token, spellings)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, s := range spellings {
		if d := fuzzy.LevenshteinDistance(token, s); d < bestDistance {
			best, bestDistance = s, d
		}
	}

	return best
}

package options

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ParsedOption is one occurrence on the command line. A nil Option is a
// positional input whose path is in Value.
type ParsedOption struct {
	Option *Option
	Value  string
	Values []string
}

// IsInput reports whether the occurrence is a positional input
func (p ParsedOption) IsInput() bool {
	return p.Option == nil
}

// Is reports whether the occurrence stands for any of opts, aliases included
func (p ParsedOption) Is(opts ...*Option) bool {
	if p.Option == nil {
		return false
	}

	canonical := p.Option.Canonical()
	for _, o := range opts {
		if o.Canonical() == canonical {
			return true
		}
	}

	return false
}

// Tokens renders the occurrence in canonical form
func (p ParsedOption) Tokens() []string {
	if p.Option == nil {
		return []string{p.Value}
	}

	switch p.Option.Kind {
	case KindFlag:
		return []string{p.Option.Spelling}
	case KindJoined:
		return []string{p.Option.Spelling + p.Value}
	case KindSeparate, KindJoinedOrSeparate:
		return []string{p.Option.Spelling, p.Value}
	case KindCommaJoined:
		return []string{p.Option.Spelling + strings.Join(p.Values, ",")}
	default:
		return []string{p.Option.Spelling}
	}
}

// ParsedArguments is the order-preserving result of Table.Parse
type ParsedArguments struct {
	Options []ParsedOption

	// Tail holds every token after "--", verbatim
	Tail          []string
	HasTerminator bool
}

// Inputs returns the positional inputs in order
func (a *ParsedArguments) Inputs() []string {
	var out []string
	for _, p := range a.Options {
		if p.IsInput() {
			out = append(out, p.Value)
		}
	}

	return out
}

// Remaining returns the tokens captured after "--"
func (a *ParsedArguments) Remaining() []string {
	return a.Tail
}

// HasArgument reports whether any of opts occurs
func (a *ParsedArguments) HasArgument(opts ...*Option) bool {
	_, ok := a.LastArgument(opts...)
	return ok
}

// LastArgument returns the final occurrence of any of opts
func (a *ParsedArguments) LastArgument(opts ...*Option) (ParsedOption, bool) {
	for i := len(a.Options) - 1; i >= 0; i-- {
		if a.Options[i].Is(opts...) {
			return a.Options[i], true
		}
	}

	return ParsedOption{}, false
}

// AllArguments returns every occurrence of any of opts in order
func (a *ParsedArguments) AllArguments(opts ...*Option) []ParsedOption {
	var out []ParsedOption
	for _, p := range a.Options {
		if p.Is(opts...) {
			out = append(out, p)
		}
	}

	return out
}

// LastInGroup returns the final occurrence of an option in group g
func (a *ParsedArguments) LastInGroup(g Group) (ParsedOption, bool) {
	for i := len(a.Options) - 1; i >= 0; i-- {
		p := a.Options[i]
		if p.Option != nil && p.Option.InGroup(g) {
			return p, true
		}
	}

	return ParsedOption{}, false
}

// Tokens renders the arguments in canonical form, terminator and tail included
func (a *ParsedArguments) Tokens() []string {
	var out []string
	for _, p := range a.Options {
		out = append(out, p.Tokens()...)
	}

	if a.HasTerminator {
		out = append(out, "--")
		out = append(out, a.Tail...)
	}

	return out
}

// String renders the canonical, shell-quoted command line
func (a *ParsedArguments) String() string {
	return shellquote.Join(a.Tokens()...)
}

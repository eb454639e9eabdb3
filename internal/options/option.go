// Package options implements the driver's command-line grammar.
//
// A Table holds Option definitions; Table.Parse turns raw tokens into an
// ordered ParsedArguments. Options are compared by pointer identity, and an
// alias resolves to its canonical option through Canonical.
package options

import "fmt"

// Kind is the shape of an option on the command line
type Kind int

const (
	// KindInput is a positional input; never declared in a table
	KindInput Kind = iota
	// KindFlag takes no value: -color-diagnostics
	KindFlag
	// KindJoined takes the rest of the token: -debug-info-format=dwarf
	KindJoined
	// KindSeparate takes the next token: -module-name main
	KindSeparate
	// KindJoinedOrSeparate takes either form: -Ifoo or -I foo
	KindJoinedOrSeparate
	// KindCommaJoined splits the rest of the token on commas: -sanitize=a,b
	KindCommaJoined
	// KindRemaining ends option parsing: --
	KindRemaining
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindFlag:
		return "flag"
	case KindJoined:
		return "joined"
	case KindSeparate:
		return "separate"
	case KindJoinedOrSeparate:
		return "joined-or-separate"
	case KindCommaJoined:
		return "comma-joined"
	case KindRemaining:
		return "remaining"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// requiresExactMatch reports whether the token must equal the spelling
func (k Kind) requiresExactMatch() bool {
	switch k {
	case KindFlag, KindSeparate, KindRemaining:
		return true
	default:
		return false
	}
}

// Group names a family of mutually exclusive options resolved last-wins
type Group string

const (
	GroupNone     Group = ""
	GroupModes    Group = "modes"
	GroupDebug    Group = "g"
	GroupColor    Group = "color"
	GroupOptimize Group = "opt"
	GroupWMO      Group = "wmo"
	GroupWarnings Group = "warnings"
)

// Attribute is a bit set of option properties
type Attribute uint

const (
	// AttrFrontend options are forwarded to compile jobs
	AttrFrontend Attribute = 1 << iota
	// AttrArgumentIsPath values are file paths
	AttrArgumentIsPath
	// AttrLinker options are forwarded to dynamic links and executables
	AttrLinker
	// AttrHelpHidden options are omitted from the options listing
	AttrHelpHidden
)

// Option is one entry of an option table
type Option struct {
	Spelling   string
	Kind       Kind
	Group      Group
	Attributes Attribute
	MetaVar    string
	Help       string

	// Alias points at the canonical option this spelling stands for
	Alias *Option

	// AllowEmptySegments keeps empty comma-joined segments instead of failing
	AllowEmptySegments bool
}

// Canonical returns the option an alias stands for, or the option itself
func (o *Option) Canonical() *Option {
	if o == nil {
		return nil
	}

	if o.Alias != nil {
		return o.Alias.Canonical()
	}

	return o
}

// Has reports whether the option carries an attribute
func (o *Option) Has(attr Attribute) bool {
	return o.Canonical().Attributes&attr != 0
}

// InGroup reports whether the option belongs to g
func (o *Option) InGroup(g Group) bool {
	return g != GroupNone && o.Canonical().Group == g
}

func (o *Option) String() string {
	return o.Spelling
}

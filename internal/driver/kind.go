package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/swiftdriver/internal/options"
)

var ErrUnknownDriverKind = errors.New("unknown driver kind")

// Kind is the personality selected by the invocation name
type Kind int

const (
	KindInteractive Kind = iota
	KindBatch
	KindFrontend
	KindAutolinkExtract
	KindIndent
	KindModuleWrap
)

var kindNames = map[string]Kind{
	"swift":                  KindInteractive,
	"swiftc":                 KindBatch,
	"swift-frontend":         KindFrontend,
	"swift-autolink-extract": KindAutolinkExtract,
	"swift-indent":           KindIndent,
	"swift-modulewrap":       KindModuleWrap,
}

func (k Kind) String() string {
	switch k {
	case KindInteractive:
		return "interactive"
	case KindBatch:
		return "batch"
	case KindFrontend:
		return "frontend"
	case KindAutolinkExtract:
		return "autolink-extract"
	case KindIndent:
		return "indent"
	case KindModuleWrap:
		return "modulewrap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsPassthrough reports whether the kind forwards its arguments to a single
// tool without driver option parsing
func (k Kind) IsPassthrough() bool {
	switch k {
	case KindFrontend, KindAutolinkExtract, KindIndent, KindModuleWrap:
		return true
	default:
		return false
	}
}

// KindForName maps an invocation name such as "swiftc" to its kind
func KindForName(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}

// IsDriverName reports whether path names a driver identity, ignoring any
// directory and ".exe" suffix
func IsDriverName(path string) bool {
	_, ok := KindForName(invocationName(path))
	return ok
}

func invocationName(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}

	return strings.TrimSuffix(base, ".exe")
}

// DetermineKind picks the driver kind for args, where args[0] is the
// invocation name. A --driver-mode= override wins over a leading -frontend
// or -modulewrap, which wins over the name.
func DetermineKind(args []string) (Kind, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: empty invocation", ErrUnknownDriverKind)
	}

	override, hasOverride := driverModeOverride(args[1:])
	if hasOverride {
		if override == "" {
			return 0, fmt.Errorf("%w: empty value in '%s'", ErrUnknownDriverKind, options.DriverMode.Spelling)
		}

		k, ok := KindForName(override)
		if !ok {
			return 0, fmt.Errorf("%w: invalid value '%s' in '%s'", ErrUnknownDriverKind, override, options.DriverMode.Spelling)
		}

		return k, nil
	}

	if len(args) > 1 {
		switch args[1] {
		case options.Frontend.Spelling:
			return KindFrontend, nil
		case options.ModuleWrap.Spelling:
			return KindModuleWrap, nil
		}
	}

	name := invocationName(args[0])
	k, ok := KindForName(name)
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownDriverKind, name)
	}

	return k, nil
}

// driverModeOverride returns the last --driver-mode= value before "--"
func driverModeOverride(args []string) (string, bool) {
	value, found := "", false
	for _, a := range args {
		if a == options.Remaining.Spelling {
			break
		}

		if strings.HasPrefix(a, options.DriverMode.Spelling) {
			value, found = strings.TrimPrefix(a, options.DriverMode.Spelling), true
		}
	}

	return value, found
}

// passthroughArgs strips the driver-only markers from a passthrough
// invocation
func passthroughArgs(kind Kind, args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, options.DriverMode.Spelling) {
			continue
		}

		if i == 0 && (a == options.Frontend.Spelling || a == options.ModuleWrap.Spelling) {
			continue
		}

		out = append(out, a)
	}

	if kind == KindModuleWrap {
		out = append([]string{options.ModuleWrap.Spelling}, out...)
	}

	return out
}

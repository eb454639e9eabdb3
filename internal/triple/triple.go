// Package triple parses target triples and answers the platform questions the
// planner asks: Darwin or not, object format, deployment version, library
// naming.
package triple

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

var ErrInvalidTriple = errors.New("invalid target triple")

// ObjectFormat is the object file format a target produces
type ObjectFormat int

const (
	FormatELF ObjectFormat = iota
	FormatMachO
	FormatCOFF
)

func (f ObjectFormat) String() string {
	switch f {
	case FormatELF:
		return "elf"
	case FormatMachO:
		return "macho"
	case FormatCOFF:
		return "coff"
	default:
		return fmt.Sprintf("ObjectFormat(%d)", int(f))
	}
}

// Version is a dotted deployment version
type Version struct {
	Major, Minor, Micro int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// Triple is a parsed arch-vendor-os[-environment] string
type Triple struct {
	Arch        string
	Vendor      string
	OS          string
	Environment string

	raw string
}

// Parse splits a triple into its components. The OS component may carry a
// trailing version such as macosx10.15.
func Parse(s string) (Triple, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return Triple{}, fmt.Errorf("%w: '%s'", ErrInvalidTriple, s)
	}

	for _, p := range parts[:3] {
		if p == "" {
			return Triple{}, fmt.Errorf("%w: '%s'", ErrInvalidTriple, s)
		}
	}

	t := Triple{
		Arch:   parts[0],
		Vendor: parts[1],
		OS:     parts[2],
		raw:    s,
	}

	if len(parts) > 3 {
		t.Environment = strings.Join(parts[3:], "-")
	}

	return t, nil
}

// MustParse is Parse for known-good literals
func MustParse(s string) Triple {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return t
}

// Host returns the triple of the machine running the driver
func Host() Triple {
	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return MustParse("arm64-apple-macosx11.0")
		}
		return MustParse("x86_64-apple-macosx10.15")
	case "windows":
		return MustParse(hostArch() + "-unknown-windows-msvc")
	default:
		return MustParse(hostArch() + "-unknown-linux-gnu")
	}
}

func hostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i686"
	default:
		return runtime.GOARCH
	}
}

func (t Triple) String() string {
	return t.raw
}

// OSName returns the OS component without its version
func (t Triple) OSName() string {
	return strings.TrimRight(t.OS, "0123456789.")
}

// IsDarwin reports whether the target is an Apple platform
func (t Triple) IsDarwin() bool {
	switch t.OSName() {
	case "macosx", "macos", "darwin", "ios", "tvos", "watchos":
		return true
	default:
		return false
	}
}

// IsWindows reports whether the target is Windows
func (t Triple) IsWindows() bool {
	return t.OSName() == "windows"
}

// IsWindowsMSVC reports whether the target uses the MSVC environment
func (t Triple) IsWindowsMSVC() bool {
	return t.IsWindows() && (t.Environment == "" || t.Environment == "msvc")
}

// IsSimulator reports whether the target is a Darwin simulator
func (t Triple) IsSimulator() bool {
	return t.IsDarwin() && t.Environment == "simulator"
}

// ObjectFormat returns the object file format of the target
func (t Triple) ObjectFormat() ObjectFormat {
	switch {
	case t.IsDarwin():
		return FormatMachO
	case t.IsWindows():
		return FormatCOFF
	default:
		return FormatELF
	}
}

// OSVersion returns the deployment version carried by the OS component, or
// the platform minimum when the triple has none
func (t Triple) OSVersion() Version {
	digits := strings.TrimPrefix(t.OS, t.OSName())
	if digits == "" {
		return t.minimumVersion()
	}

	var v Version
	fields := strings.Split(digits, ".")
	dst := []*int{&v.Major, &v.Minor, &v.Micro}
	for i, f := range fields {
		if i >= len(dst) {
			break
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return t.minimumVersion()
		}
		*dst[i] = n
	}

	return v
}

func (t Triple) minimumVersion() Version {
	switch t.OSName() {
	case "macosx", "macos", "darwin":
		return Version{Major: 10, Minor: 9}
	case "ios", "tvos":
		return Version{Major: 7}
	case "watchos":
		return Version{Major: 2}
	default:
		return Version{}
	}
}

// VersionMinFlag returns the ld deployment-target flag, or "" off Darwin
func (t Triple) VersionMinFlag() string {
	switch t.OSName() {
	case "macosx", "macos", "darwin":
		return "-macosx_version_min"
	case "ios":
		if t.IsSimulator() {
			return "-ios_simulator_version_min"
		}
		return "-iphoneos_version_min"
	case "tvos":
		if t.IsSimulator() {
			return "-tvos_simulator_version_min"
		}
		return "-tvos_version_min"
	case "watchos":
		if t.IsSimulator() {
			return "-watchos_simulator_version_min"
		}
		return "-watchos_version_min"
	default:
		return ""
	}
}

// DynamicLibraryName returns the file name of a shared library for module
func (t Triple) DynamicLibraryName(module string) string {
	switch {
	case t.IsDarwin():
		return "lib" + module + ".dylib"
	case t.IsWindows():
		return module + ".dll"
	default:
		return "lib" + module + ".so"
	}
}

// StaticLibraryName returns the file name of a static archive for module
func (t Triple) StaticLibraryName(module string) string {
	if t.IsWindows() {
		return module + ".lib"
	}

	return "lib" + module + ".a"
}

// ExecutableName returns the file name of an executable for module
func (t Triple) ExecutableName(module string) string {
	if t.IsWindows() {
		return module + ".exe"
	}

	return module
}

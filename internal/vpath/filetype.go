package vpath

import "fmt"

// FileType is the closed set of file kinds the driver knows about
type FileType int

const (
	TypeSwift FileType = iota
	TypeObject
	TypeAssembly
	TypeLLVMIR
	TypeLLVMBitcode
	TypeSwiftModule
	TypeSwiftDocumentation
	TypeDependencies
	TypeSwiftDeps
	TypeAutolink
	TypeImage
	TypeDSYM
	TypeObjCHeader
	TypeRemap
)

var fileTypes = []FileType{
	TypeSwift,
	TypeObject,
	TypeAssembly,
	TypeLLVMIR,
	TypeLLVMBitcode,
	TypeSwiftModule,
	TypeSwiftDocumentation,
	TypeDependencies,
	TypeSwiftDeps,
	TypeAutolink,
	TypeImage,
	TypeDSYM,
	TypeObjCHeader,
	TypeRemap,
}

// String returns the name used as an output-file map key
func (ft FileType) String() string {
	switch ft {
	case TypeSwift:
		return "swift"
	case TypeObject:
		return "object"
	case TypeAssembly:
		return "assembly"
	case TypeLLVMIR:
		return "llvm-ir"
	case TypeLLVMBitcode:
		return "llvm-bc"
	case TypeSwiftModule:
		return "swiftmodule"
	case TypeSwiftDocumentation:
		return "swiftdoc"
	case TypeDependencies:
		return "dependencies"
	case TypeSwiftDeps:
		return "swift-dependencies"
	case TypeAutolink:
		return "autolink"
	case TypeImage:
		return "image"
	case TypeDSYM:
		return "dSYM"
	case TypeObjCHeader:
		return "objc-header"
	case TypeRemap:
		return "remap"
	default:
		return fmt.Sprintf("FileType(%d)", int(ft))
	}
}

// Extension returns the file extension (no dot). Images have none.
func (ft FileType) Extension() string {
	switch ft {
	case TypeSwift:
		return "swift"
	case TypeObject:
		return "o"
	case TypeAssembly:
		return "s"
	case TypeLLVMIR:
		return "ll"
	case TypeLLVMBitcode:
		return "bc"
	case TypeSwiftModule:
		return "swiftmodule"
	case TypeSwiftDocumentation:
		return "swiftdoc"
	case TypeDependencies:
		return "d"
	case TypeSwiftDeps:
		return "swiftdeps"
	case TypeAutolink:
		return "autolink"
	case TypeImage:
		return ""
	case TypeDSYM:
		return "dSYM"
	case TypeObjCHeader:
		return "h"
	case TypeRemap:
		return "remap"
	default:
		return ""
	}
}

// FileTypeForName looks a type up by its output-file map key
func FileTypeForName(name string) (FileType, bool) {
	for _, ft := range fileTypes {
		if ft.String() == name {
			return ft, true
		}
	}

	return 0, false
}

// FileTypeForExtension looks a type up by extension (no dot)
func FileTypeForExtension(ext string) (FileType, bool) {
	if ext == "" {
		return 0, false
	}

	for _, ft := range fileTypes {
		if ft.Extension() == ext {
			return ft, true
		}
	}

	return 0, false
}

package core

import "fmt"

// WarningKind classifies a recoverable parse anomaly.
type WarningKind int

const (
	MagicVariant WarningKind = iota
	SpriteAbsent
	ResourceTruncated
	ColorMissing
	DanglingRegisterId
	RegisterShortfall
	DuplicateId
	SecondRoot
	TrailingBytes
)

func (k WarningKind) String() string {
	switch k {
	case MagicVariant:
		return "MagicVariant"
	case SpriteAbsent:
		return "SpriteAbsent"
	case ResourceTruncated:
		return "ResourceTruncated"
	case ColorMissing:
		return "ColorMissing"
	case DanglingRegisterId:
		return "DanglingRegisterId"
	case RegisterShortfall:
		return "RegisterShortfall"
	case DuplicateId:
		return "DuplicateId"
	case SecondRoot:
		return "SecondRoot"
	case TrailingBytes:
		return "TrailingBytes"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning describes a single recoverable anomaly encountered during parse.
type Warning struct {
	Kind    WarningKind
	Offset  int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s@0x%x: %s", w.Kind, w.Offset, w.Message)
}

func warn(kind WarningKind, offset int, format string, args ...interface{}) Warning {
	return Warning{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// NewWarning is the exported form of warn, for use by sibling packages
// (notably internal/treebuild) that need to report anomalies using the
// same Warning type as the scanner.
func NewWarning(kind WarningKind, offset int, format string, args ...interface{}) Warning {
	return warn(kind, offset, format, args...)
}

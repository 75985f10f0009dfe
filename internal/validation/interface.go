package validation

import (
	"path/filepath"
	"strings"
)

// Kind represents the kind of an interface definition file
type Kind string

const (
	KindMessage Kind = "msg"
	KindService Kind = "srv"
	KindUnknown Kind = "unknown"
)

// DetectKind detects the interface kind from the file extension
func DetectKind(filePath string) Kind {
	ext := strings.ToLower(filepath.Ext(filePath))

	kindMap := map[string]Kind{
		".msg": KindMessage,
		".srv": KindService,
	}

	if kind, ok := kindMap[ext]; ok {
		return kind
	}

	return KindUnknown
}

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

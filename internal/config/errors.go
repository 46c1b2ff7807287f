package config

import (
	"errors"
	"fmt"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

// Dotted paths of the required configuration sections, in check order.
const (
	PathReport        = "report"
	PathConfiguration = "report.configuration"
	PathCommon        = "report.configuration.common"
	PathTarget        = "report.configuration.target"
	PathBios          = "report.configuration.bios"
	PathBiosSettings  = "report.configuration.bios.settings"
	PathBiosExcerpt   = "report.configuration.bios.excerpt"
)

// MissingSectionError reports a required configuration section that is absent.
type MissingSectionError struct {
	Path string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("configuration misses %s entry", e.Path)
}

func missing(path string) error {
	return foundationerrors.ConfigError("missing configuration section").
		WithCause(&MissingSectionError{Path: path}).
		WithContext("path", path).
		Build()
}

// MissingPath returns the dotted path of the missing section when err was
// caused by one.
func MissingPath(err error) (string, bool) {
	var ms *MissingSectionError
	if errors.As(err, &ms) {
		return ms.Path, true
	}
	return "", false
}

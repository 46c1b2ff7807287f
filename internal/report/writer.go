package report

import (
	"os"
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

// ValidateOutputName checks that output names a file directly inside the
// result directory.
func ValidateOutputName(output string) error {
	if output == "" || output == "." || output == ".." || strings.ContainsAny(output, `/\`) {
		return foundationerrors.ValidationError("invalid output name").
			WithContext("output", output).
			Build()
	}
	return nil
}

// WriteDocument writes doc to <dir>/<output>.html, truncating an existing
// file. The file is closed on every path; a failed close is reported unless
// an earlier write error already was.
func WriteDocument(dir, output, doc string) (path string, err error) {
	if err := ValidateOutputName(output); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", foundationerrors.FileSystemError("create result directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}

	path = filepath.Join(dir, output+".html")
	// #nosec G304 -- output is validated to stay inside dir.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", foundationerrors.FileSystemError("open report file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			path = ""
			err = foundationerrors.FileSystemError("close report file").
				WithCause(cerr).
				WithContext("path", filepath.Join(dir, output+".html")).
				Build()
		}
	}()

	if _, err := file.WriteString(doc); err != nil {
		return "", foundationerrors.FileSystemError("write report file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return path, nil
}

// Package config decodes and validates the benchmark report configuration.
//
// The configuration file is YAML or JSON. Parsing builds a typed File whose
// required sections are guaranteed to be present; a missing section is
// reported as a *MissingSectionError naming its dotted path.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

// KVTable is a mapping the rendering layer displays as a key/value table.
type KVTable map[string]any

// Bios holds the BIOS subtree of the machine configuration.
type Bios struct {
	Settings KVTable
	Excerpt  KVTable
	Extra    map[string]any
}

// Configuration describes the machine the benchmark ran on.
type Configuration struct {
	Common KVTable
	Target KVTable
	Bios   Bios
	Extra  map[string]any
}

// Report is the "report" subtree of the configuration file.
type Report struct {
	Configuration Configuration
	// Authors is only meaningful when HasAuthors is set.
	Authors    []string
	HasAuthors bool
	Extra      map[string]any
}

// File is a fully validated configuration file.
type File struct {
	Report Report
	Extra  map[string]any
}

type rawBios struct {
	Settings map[string]any `yaml:"settings"`
	Excerpt  map[string]any `yaml:"excerpt"`
	Rest     map[string]any `yaml:",inline"`
}

type rawConfiguration struct {
	Common map[string]any `yaml:"common"`
	Target map[string]any `yaml:"target"`
	Bios   *rawBios       `yaml:"bios"`
	Rest   map[string]any `yaml:",inline"`
}

type rawReport struct {
	Configuration *rawConfiguration `yaml:"configuration"`
	Authors       *[]string         `yaml:"authors"`
	Rest          map[string]any    `yaml:",inline"`
}

type rawFile struct {
	Report *rawReport     `yaml:"report"`
	Rest   map[string]any `yaml:",inline"`
}

// Load reads, expands and parses the configuration file at path.
//
// Variables from a .env file in the working directory are loaded first
// (existing environment wins); $VAR references to set variables are expanded.
// A missing .env is fine, a malformed one is a config error.
func Load(path string) (*File, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, foundationerrors.ConfigError("failed to load .env file").
			WithCause(err).
			WithContext("path", ".env").
			Build()
	}

	// #nosec G304 -- path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, foundationerrors.NotFoundError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, foundationerrors.FileSystemError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	file, err := Parse([]byte(expandSetVars(string(data))))
	if err != nil {
		if ce, ok := foundationerrors.AsClassified(err); ok {
			return nil, ce.WithContext("file", path)
		}
		return nil, err
	}
	return file, nil
}

// expandSetVars replaces $VAR and ${VAR} with their values, leaving references
// to unset variables untouched.
func expandSetVars(s string) string {
	return os.Expand(s, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "$" + name
	})
}

// Parse decodes YAML or JSON configuration data and validates its structure.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, foundationerrors.ConfigError("failed to decode configuration").
			WithCause(err).
			Build()
	}
	return raw.validate()
}

// validate walks the required sections in a fixed order and stops at the
// first one that is absent. Nothing is built until every check passes.
func (r *rawFile) validate() (*File, error) {
	if r.Report == nil {
		return nil, missing(PathReport)
	}
	c := r.Report.Configuration
	switch {
	case c == nil:
		return nil, missing(PathConfiguration)
	case c.Common == nil:
		return nil, missing(PathCommon)
	case c.Target == nil:
		return nil, missing(PathTarget)
	case c.Bios == nil:
		return nil, missing(PathBios)
	case c.Bios.Settings == nil:
		return nil, missing(PathBiosSettings)
	case c.Bios.Excerpt == nil:
		return nil, missing(PathBiosExcerpt)
	}

	f := &File{
		Extra: r.Rest,
		Report: Report{
			Extra: r.Report.Rest,
			Configuration: Configuration{
				Common: c.Common,
				Target: c.Target,
				Extra:  c.Rest,
				Bios: Bios{
					Settings: c.Bios.Settings,
					Excerpt:  c.Bios.Excerpt,
					Extra:    c.Bios.Rest,
				},
			},
		},
	}
	if r.Report.Authors != nil {
		f.Report.Authors = *r.Report.Authors
		f.Report.HasAuthors = true
	}
	return f, nil
}

// String implements fmt.Stringer for log output.
func (f *File) String() string {
	return fmt.Sprintf("report config (%d authors, %d extra report keys)", len(f.Report.Authors), len(f.Report.Extra))
}

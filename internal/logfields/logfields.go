package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPart       = "part"
	KeyParts      = "parts"
	KeyFigureFile = "figure_file"
	KeyFigureKey  = "figure_key"
	KeyFigures    = "figures"
	KeyTemplate   = "template"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyResultDir  = "result_dir"
	KeyBytes      = "bytes"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Part(name string) slog.Attr       { return slog.String(KeyPart, name) }
func Parts(n int) slog.Attr            { return slog.Int(KeyParts, n) }
func FigureFile(f string) slog.Attr    { return slog.String(KeyFigureFile, f) }
func FigureKey(k string) slog.Attr     { return slog.String(KeyFigureKey, k) }
func Figures(n int) slog.Attr          { return slog.Int(KeyFigures, n) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Output(name string) slog.Attr     { return slog.String(KeyOutput, name) }
func ResultDir(dir string) slog.Attr   { return slog.String(KeyResultDir, dir) }
func Bytes(n int) slog.Attr            { return slog.Int(KeyBytes, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDocument   = "document"
	KeyShortURI   = "short_uri"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyTemplate   = "template"
	KeyLabel      = "label"
	KeyCategory   = "category"
	KeyBuildID    = "build_id"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Document(rel string) slog.Attr    { return slog.String(KeyDocument, rel) }
func ShortURI(uri string) slog.Attr    { return slog.String(KeyShortURI, uri) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Label(name string) slog.Attr      { return slog.String(KeyLabel, name) }
func Category(name string) slog.Attr   { return slog.String(KeyCategory, name) }
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Outcome(outcome string) slog.Attr { return slog.String(KeyOutcome, outcome) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

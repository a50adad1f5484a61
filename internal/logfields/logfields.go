package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRequestID    = "request_id"
	KeyDocumentType = "document_type"
	KeyDocumentID   = "document_id"
	KeySlug         = "slug"
	KeySection      = "section"
	KeySectionKey   = "section_key"
	KeyComponent    = "component"
	KeyQueryKind    = "query_kind"
	KeyDraft        = "draft"
	KeyCount        = "count"
	KeyMethod       = "method"
	KeyPath         = "path"
	KeyStatus       = "status"
	KeyURL          = "url"
	KeyUserAgent    = "user_agent"
	KeyRemoteAddr   = "remote_addr"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func DocumentType(t string) slog.Attr { return slog.String(KeyDocumentType, t) }
func DocumentID(id string) slog.Attr  { return slog.String(KeyDocumentID, id) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Section(tag string) slog.Attr    { return slog.String(KeySection, tag) }
func SectionKey(key string) slog.Attr { return slog.String(KeySectionKey, key) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func QueryKind(kind string) slog.Attr { return slog.String(KeyQueryKind, kind) }
func Draft(draft bool) slog.Attr      { return slog.Bool(KeyDraft, draft) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Package content decides whether bytes travel as text or base64 and infers
// MIME types for tool output and resources.
package content

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/elnormous/contenttype"
)

// OctetStream is the fallback MIME type for unknown content.
const OctetStream = "application/octet-stream"

// IsBinary reports whether output with the given declared MIME type must be
// base64-encoded. An empty type means text. Otherwise everything except
// text/*, application/json and application/xml is binary.
func IsBinary(mimeType string) bool {
	if mimeType == "" {
		return false
	}
	mt := contenttype.NewMediaType(mimeType)
	if mt.Type == "" {
		// Unparseable: compare the raw declaration.
		return !strings.HasPrefix(mimeType, "text/") &&
			mimeType != "application/json" &&
			mimeType != "application/xml"
	}
	typ, sub := strings.ToLower(mt.Type), strings.ToLower(mt.Subtype)
	if typ == "text" {
		return false
	}
	if typ == "application" && (sub == "json" || sub == "xml") {
		return false
	}
	return true
}

// Essence reduces a Content-Type header value to type/subtype, dropping any
// parameters. Empty or unparseable values yield OctetStream.
func Essence(headerValue string) string {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" {
		return OctetStream
	}
	mt := contenttype.NewMediaType(headerValue)
	if mt.Type == "" || mt.Subtype == "" {
		if base, _, ok := strings.Cut(headerValue, ";"); ok && strings.TrimSpace(base) != "" {
			return strings.TrimSpace(base)
		}
		return OctetStream
	}
	return mt.Type + "/" + mt.Subtype
}

// MimeTypeFromPath infers a MIME type from the extension of p using the
// platform MIME table.
func MimeTypeFromPath(p string) string {
	ext := strings.ToLower(filepath.Ext(p))
	if ext == "" {
		return OctetStream
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return OctetStream
	}
	return Essence(mt)
}

// ListingMimeType is the cheap guess advertised by resources/list, which
// never touches the resource itself.
func ListingMimeType(p string) string {
	switch {
	case strings.HasSuffix(p, ".json"):
		return "application/json"
	case strings.HasSuffix(p, ".txt"):
		return "text/plain"
	default:
		return OctetStream
	}
}

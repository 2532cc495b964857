package content

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestIsBinary(t *testing.T) {
	cases := []struct {
		mimeType string
		want     bool
	}{
		{"", false},
		{"text/plain", false},
		{"text/html", false},
		{"text/csv; charset=utf-8", false},
		{"application/json", false},
		{"application/xml", false},
		{"application/json; charset=utf-8", false},
		{"image/png", true},
		{"application/pdf", true},
		{"application/octet-stream", true},
		{"application/yaml", true},
	}
	for _, tc := range cases {
		if got := IsBinary(tc.mimeType); got != tc.want {
			t.Errorf("IsBinary(%q): want %v, got %v", tc.mimeType, tc.want, got)
		}
	}
}

func TestEssence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", OctetStream},
		{"image/png", "image/png"},
		{"text/html; charset=ISO-8859-1", "text/html"},
		{"application/json;charset=utf-8", "application/json"},
	}
	for _, tc := range cases {
		if got := Essence(tc.in); got != tc.want {
			t.Errorf("Essence(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestMimeTypeFromPath(t *testing.T) {
	if got := MimeTypeFromPath("notes.txt"); got != "text/plain" {
		t.Errorf("notes.txt: want text/plain, got %q", got)
	}
	if got := MimeTypeFromPath("data.bin"); got != OctetStream {
		t.Errorf("data.bin: want %s, got %q", OctetStream, got)
	}
	if got := MimeTypeFromPath("Makefile"); got != OctetStream {
		t.Errorf("Makefile: want %s, got %q", OctetStream, got)
	}
	if got := MimeTypeFromPath("logo.PNG"); got != "image/png" {
		t.Errorf("logo.PNG: want image/png, got %q", got)
	}
}

func TestListingMimeType(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/etc/config.json", "application/json"},
		{"notes.txt", "text/plain"},
		{"data.bin", OctetStream},
		{"https://example.com/x", OctetStream},
		{"https://example.com/a.json", "application/json"},
	}
	for _, tc := range cases {
		if got := ListingMimeType(tc.in); got != tc.want {
			t.Errorf("ListingMimeType(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestClassificationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("text/* is never binary", prop.ForAll(
		func(sub string) bool {
			return !IsBinary("text/" + sub)
		},
		gen.Identifier(),
	))

	properties.Property("image/* is always binary", prop.ForAll(
		func(sub string) bool {
			return IsBinary("image/" + sub)
		},
		gen.Identifier(),
	))

	properties.Property("parameters do not change the decision", prop.ForAll(
		func(base string, charset string) bool {
			return IsBinary(base) == IsBinary(base+"; charset="+charset)
		},
		gen.OneConstOf("text/plain", "application/json", "application/xml", "image/png", "application/pdf"),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRendererParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	for _, name := range []string{
		"home", "venues", "search_venues", "show_venue", "venue_form",
		"artists", "search_artists", "show_artist", "artist_form",
		"shows", "show_form", "error",
	} {
		if !r.Has(name) {
			t.Errorf("page %q not parsed", name)
		}
	}
	if r.Has("layout") {
		t.Error("layout registered as a page")
	}
}

func TestRenderFlashAndEscaping(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	page := Page{Title: "Home", Flash: &Flash{Kind: "danger", Message: "Venue <b> could not be listed."}}
	if err := r.Render(&buf, "home", page, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `alert-danger`) || !strings.Contains(out, "Venue &lt;b&gt; could not be listed.") {
		t.Fatalf("flash not rendered safely:\n%s", out)
	}

	if err := r.Render(&buf, "nope", page, nil); err == nil {
		t.Fatal("Render() of an unknown page succeeded")
	}
}

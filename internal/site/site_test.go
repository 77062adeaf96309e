package site_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nikbrunner/folio/internal/site"
	"github.com/nikbrunner/folio/internal/transition"
	"gotest.tools/v3/assert"
)

const aboutHTML = `<!DOCTYPE html>
<html><head><title>About | Jack</title></head><body>
<nav><a href="/">Projects</a></nav>
<main class="main-content">
  <div class="main-content-inner" id="mainContentInner">
    <h1>About me</h1>
    <p>I build   small tools.</p>
    <ul><li>Go</li><li>TypeScript</li></ul>
    <script>console.log("x")</script>
  </div>
</main>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(aboutHTML))
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<main class="main-content"><p>Say hi</p></main>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<main class="main-content">  </main>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPage_InnerContent(t *testing.T) {
	srv := newServer(t)
	c, err := site.NewClient(srv.URL)
	assert.NilError(t, err)

	page, err := c.FetchPage(context.Background(), transition.About)
	assert.NilError(t, err)
	assert.Equal(t, page.Route, transition.About)
	assert.Equal(t, page.Title, "About | Jack")
	assert.Assert(t, !strings.Contains(page.HTML, "<nav"))
	text, err := page.Text()
	assert.NilError(t, err)
	assert.Equal(t, text, "About me\n\nI build small tools.\n\n• Go\n\n• TypeScript")
}

func TestFetchPage_MainFallback(t *testing.T) {
	srv := newServer(t)
	c, err := site.NewClient(srv.URL + "/")
	assert.NilError(t, err)

	page, err := c.FetchPage(context.Background(), transition.Contact)
	assert.NilError(t, err)
	text, err := page.Text()
	assert.NilError(t, err)
	assert.Equal(t, text, "Say hi")
}

func TestFetchPage_NoContent(t *testing.T) {
	srv := newServer(t)
	c, err := site.NewClient(srv.URL)
	assert.NilError(t, err)

	_, err = c.FetchPage(context.Background(), transition.Projects)
	assert.Assert(t, errors.Is(err, site.ErrNoContent))
}

func TestFetchHTML_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := site.NewClient(srv.URL)
	assert.NilError(t, err)

	_, err = c.FetchHTML(context.Background(), transition.About)
	assert.Assert(t, errors.Is(err, site.ErrRequest))
}

func TestFetchHTML_Cancelled(t *testing.T) {
	srv := newServer(t)
	c, err := site.NewClient(srv.URL)
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.FetchHTML(ctx, transition.About)
	assert.Assert(t, errors.Is(err, site.ErrRequest))
}

func TestNewClient_Invalid(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "example.com", "://x"} {
		_, err := site.NewClient(raw)
		assert.Assert(t, err != nil, raw)
	}
}

func TestClient_URL(t *testing.T) {
	c, err := site.NewClient("https://jack.dev/portfolio/")
	assert.NilError(t, err)
	assert.Equal(t, c.URL(transition.About), "https://jack.dev/portfolio/about")
	assert.Equal(t, c.URL(transition.Projects), "https://jack.dev/portfolio/")
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"inline", "<span>a</span> <em>b</em>", "a b"},
		{"blocks", "<h2>Title</h2><p>One</p><p>Two</p>", "Title\n\nOne\n\nTwo"},
		{"style dropped", "<style>p{}</style><p>x</p>", "x"},
		{"list", "<ul><li>Go</li><li>Rust</li></ul>", "• Go\n\n• Rust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := site.Text(tt.in)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestPage_TextEmpty(t *testing.T) {
	for _, in := range []string{"", "<div>  </div>", "<script>x()</script>"} {
		page := &site.Page{Route: transition.About, HTML: in}
		_, err := page.Text()
		assert.Assert(t, errors.Is(err, site.ErrNoContent), "%q", in)
	}
}

package tui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/folio/internal/copier"
	"github.com/nikbrunner/folio/internal/site"
	"github.com/nikbrunner/folio/internal/transition"
)

const aboutFetchTimeout = 10 * time.Second

// Copier writes text to the clipboard.
type Copier interface {
	Copy(text string) (copier.Method, error)
}

// PageFetcher loads a page of the live site.
type PageFetcher interface {
	FetchPage(ctx context.Context, route transition.Route) (*site.Page, error)
}

// aboutLoadedMsg carries the result of fetching the about page.
type aboutLoadedMsg struct {
	text string
	err  error
}

func fetchAbout(fetcher PageFetcher) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aboutFetchTimeout)
		defer cancel()

		page, err := fetcher.FetchPage(ctx, transition.About)
		if err != nil {
			return aboutLoadedMsg{err: err}
		}
		text, err := page.Text()
		if err != nil {
			return aboutLoadedMsg{err: err}
		}
		return aboutLoadedMsg{text: text}
	}
}

// OpenURL opens a URL in the default browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

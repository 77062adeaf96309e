package tui_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/folio/internal/copier"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/site"
	"github.com/nikbrunner/folio/internal/storage"
	"github.com/nikbrunner/folio/internal/timer"
	"github.com/nikbrunner/folio/internal/transition"
	"github.com/nikbrunner/folio/internal/tui"
	"github.com/nikbrunner/folio/internal/tui/layout"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gotest.tools/v3/assert"
)

type fakeCopier struct {
	texts []string
	err   error
}

func (f *fakeCopier) Copy(text string) (copier.Method, error) {
	if f.err != nil {
		return copier.System, f.err
	}
	f.texts = append(f.texts, text)
	return copier.System, nil
}

type fakeFetcher struct {
	page  *site.Page
	err   error
	calls int
}

func (f *fakeFetcher) FetchPage(_ context.Context, _ transition.Route) (*site.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func testCatalog() *model.Catalog {
	project := func(id, title string, tags ...string) model.Project {
		return model.Project{
			ID:      id,
			Title:   title,
			Summary: title + " summary",
			URL:     "https://" + strings.ToLower(title) + ".dev",
			Tags:    tags,
			Year:    2024,
		}
	}

	golf := project("p7", "Golf", "web")
	golf.URL = ""
	golf.Repo = "https://github.com/example/golf"
	golf.Description = "Golf in depth"

	return &model.Catalog{
		Profile: model.Profile{
			Name:     "Ada Example",
			Headline: "Builds terminal tools",
			About:    "Local about text",
			Email:    "ada@example.com",
			Links:    []model.Link{{Label: "GitHub", URL: "https://github.com/example"}},
		},
		Projects: []model.Project{
			project("p1", "Alpha", "go", "cli"),
			project("p2", "Bravo", "rust"),
			project("p3", "Charlie", "web"),
			project("p4", "Delta", "go"),
			project("p5", "Echo", "rust"),
			project("p6", "Foxtrot", "web"),
			golf,
		},
	}
}

type harness struct {
	app    tui.App
	sched  *timer.Manual
	clip   *fakeCopier
	opened []string
}

func newHarness(t *testing.T, params tui.AppParams) *harness {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)

	h := &harness{sched: timer.NewManual(), clip: &fakeCopier{}}
	if params.Catalog == nil {
		params.Catalog = testCatalog()
	}
	params.Scheduler = h.sched
	if params.Copier == nil {
		params.Copier = h.clip
	}
	params.Opener = func(url string) error {
		h.opened = append(h.opened, url)
		return nil
	}
	if params.Logger == nil {
		params.Logger = logger
	}

	h.app = tui.NewApp(params).WithDimensions(80, 24)
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.app.Update(msg)
	h.app = updated.(tui.App)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "shift+tab":
			h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) click(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) advance(d time.Duration) {
	h.sched.Advance(d)
}

func visibleTitles(app tui.App) []string {
	var titles []string
	for _, p := range app.VisibleProjects() {
		titles = append(titles, p.Title)
	}
	return titles
}

// At 80 columns the strip is 76 wide: two 30-column cards fit between the
// 4-column insets, so seven projects make four pages.
func TestApp_StartsOnFirstPage(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	engine := h.app.Engine()
	assert.Assert(t, engine != nil)
	assert.Equal(t, engine.CardsPerView(), 2)
	assert.Equal(t, engine.TotalPages(), 4)
	assert.Equal(t, engine.CurrentPage(), 0)
	assert.Equal(t, h.app.ScrollOffset(), 4.0)
	assert.Equal(t, h.app.FocusedProject().Title, "Alpha")
}

func TestApp_NextPage_ScrollsAndSettles(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("l")
	engine := h.app.Engine()
	assert.Equal(t, engine.CurrentPage(), 1)
	assert.Assert(t, engine.Scrolling())

	h.advance(2 * time.Second)
	assert.Assert(t, !engine.Scrolling())
	assert.Equal(t, h.app.ScrollOffset(), 68.0)
	assert.Equal(t, engine.ActiveCard(), 2)
	assert.Equal(t, h.app.FocusedProject().Title, "Charlie")
}

func TestApp_NextIgnoredWhileSettling(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("l", "l")
	assert.Equal(t, h.app.Engine().CurrentPage(), 1)

	h.advance(2 * time.Second)
	h.press("l")
	assert.Equal(t, h.app.Engine().CurrentPage(), 2)
}

func TestApp_NextStopsAtLastPage(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	for range 5 {
		h.press("l")
		h.advance(2 * time.Second)
	}
	assert.Equal(t, h.app.Engine().CurrentPage(), 3)

	h.press("h")
	h.advance(2 * time.Second)
	assert.Equal(t, h.app.Engine().CurrentPage(), 2)
}

func TestApp_FocusFollowsCards(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("L")
	assert.Equal(t, h.app.FocusedProject().Title, "Bravo")
	assert.Equal(t, h.app.Engine().CurrentPage(), 0)

	h.press("L")
	assert.Equal(t, h.app.FocusedProject().Title, "Charlie")
	assert.Equal(t, h.app.Engine().CurrentPage(), 1)

	h.advance(2 * time.Second)
	h.press("H", "H")
	assert.Equal(t, h.app.FocusedProject().Title, "Alpha")
	assert.Equal(t, h.app.Engine().CurrentPage(), 0)
}

func TestApp_JumpToCard(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("5")
	assert.Equal(t, h.app.Engine().CurrentPage(), 2)
	assert.Equal(t, h.app.FocusedProject().Title, "Echo")

	// Out of range digits are ignored.
	h.advance(2 * time.Second)
	h.press("9")
	assert.Equal(t, h.app.Engine().CurrentPage(), 2)
}

func TestApp_CycleTag_ResetsToFirstPage(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("l")
	h.advance(2 * time.Second)
	assert.Equal(t, h.app.Engine().CurrentPage(), 1)

	// Tags sort as cli, go, rust, web.
	h.press("t", "t")
	assert.Equal(t, h.app.Criteria().Tag, "go")
	assert.DeepEqual(t, visibleTitles(h.app), []string{"Alpha", "Delta"})

	engine := h.app.Engine()
	assert.Equal(t, engine.CurrentPage(), 0)
	assert.Equal(t, engine.TotalPages(), 1)
	assert.Assert(t, !engine.Scrolling())
	// Two cards fit without scrolling, so the snap clamps to 0.
	assert.Equal(t, h.app.ScrollOffset(), 0.0)

	h.press("t", "t", "t")
	assert.Equal(t, h.app.Criteria().Tag, "")
	assert.Equal(t, len(h.app.VisibleProjects()), 7)
}

func TestApp_FilterMode(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("/")
	assert.Equal(t, h.app.Mode(), tui.ModeFilter)

	h.press("g", "o", "l", "f")
	assert.Equal(t, h.app.Criteria().Query, "golf")
	assert.Assert(t, len(h.app.VisibleProjects()) < 7)
	found := false
	for _, title := range visibleTitles(h.app) {
		found = found || title == "Golf"
	}
	assert.Assert(t, found, "Golf should match its own title")

	h.press("enter")
	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
	assert.Equal(t, h.app.Criteria().Query, "golf")

	h.press("esc")
	assert.Equal(t, h.app.Criteria().Query, "")
	assert.Equal(t, len(h.app.VisibleProjects()), 7)
}

func TestApp_FilterMode_EscClearsQuery(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("t", "/", "z", "z", "z")
	assert.Equal(t, len(h.app.VisibleProjects()), 0)
	assert.Equal(t, h.app.Engine().TotalPages(), 1)

	h.press("esc")
	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
	assert.Equal(t, h.app.Criteria().Query, "")
	assert.Equal(t, h.app.Criteria().Tag, "cli")
	assert.DeepEqual(t, visibleTitles(h.app), []string{"Alpha"})
}

func TestApp_FlipCard(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("enter")
	assert.Assert(t, h.app.Flipped("p1"))

	h.press("enter")
	assert.Assert(t, !h.app.Flipped("p1"))
}

func TestApp_OpenAndYank(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("o")
	assert.DeepEqual(t, h.opened, []string{"https://alpha.dev"})

	h.press("y")
	assert.DeepEqual(t, h.clip.texts, []string{"https://alpha.dev"})
	assert.Equal(t, h.app.Message(), "Copied")
	assert.Assert(t, h.app.Copied())

	h.advance(2 * time.Second)
	assert.Equal(t, h.app.Message(), "")
	assert.Assert(t, h.app.Copied())

	h.advance(500 * time.Millisecond)
	assert.Assert(t, !h.app.Copied())
}

func TestApp_OpenFallsBackToRepo(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("7")
	h.advance(2 * time.Second)
	h.press("o")
	assert.DeepEqual(t, h.opened, []string{"https://github.com/example/golf"})
}

func TestApp_CopyFailureIsAbsorbed(t *testing.T) {
	h := newHarness(t, tui.AppParams{Copier: &fakeCopier{err: errors.New("no clipboard")}})

	h.press("y")
	assert.Equal(t, h.app.Message(), "")
	assert.Assert(t, !h.app.Copied())
}

func TestApp_RouteTransition(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("tab")
	assert.Assert(t, h.app.Transitioning())
	assert.Equal(t, h.app.Route(), transition.Projects)

	// Navigation during a transition is ignored.
	h.press("tab")

	h.advance(time.Second)
	assert.Assert(t, !h.app.Transitioning())
	assert.Equal(t, h.app.Route(), transition.About)
	assert.Assert(t, h.app.Engine() == nil)
}

func TestApp_RouteTransition_TimeoutFinishes(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("shift+tab")
	h.advance(450 * time.Millisecond)
	assert.Equal(t, h.app.Route(), transition.Contact)
	assert.Assert(t, !h.app.Transitioning())
}

func TestApp_ReturnToProjectsRebuildsEngine(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("l")
	h.advance(2 * time.Second)
	h.press("tab")
	h.advance(time.Second)
	h.press("shift+tab")
	h.advance(time.Second)

	assert.Equal(t, h.app.Route(), transition.Projects)
	engine := h.app.Engine()
	assert.Assert(t, engine != nil)
	assert.Equal(t, engine.CurrentPage(), 0)
	assert.Equal(t, engine.TotalPages(), 4)
}

func TestApp_AboutFetch(t *testing.T) {
	fetcher := &fakeFetcher{page: &site.Page{Route: transition.About, HTML: "<p>Hello from the live site</p>"}}
	h := newHarness(t, tui.AppParams{Site: fetcher})

	h.press("tab")
	h.advance(time.Second)
	assert.Equal(t, h.app.Route(), transition.About)

	cmd := h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Assert(t, cmd != nil)
	h.send(cmd())
	assert.Equal(t, fetcher.calls, 1)
	assert.Assert(t, strings.Contains(layout.StripANSI(h.app.View()), "Hello from the live site"))
}

func TestApp_AboutFetchFailureFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{err: site.ErrNoContent}
	h := newHarness(t, tui.AppParams{Site: fetcher, Route: transition.About})

	cmd := h.app.Init()
	assert.Assert(t, cmd != nil)
	h.send(cmd())
	assert.Assert(t, strings.Contains(layout.StripANSI(h.app.View()), "Local about text"))
}

func TestApp_AboutFetchEmptyPageWarns(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	fetcher := &fakeFetcher{page: &site.Page{Route: transition.About, HTML: "<div>  </div>"}}
	h := newHarness(t, tui.AppParams{Site: fetcher, Route: transition.About, Logger: logger})

	cmd := h.app.Init()
	assert.Assert(t, cmd != nil)
	msg := cmd()
	h.send(msg)

	assert.Equal(t, fetcher.calls, 1)
	assert.Assert(t, strings.Contains(layout.StripANSI(h.app.View()), "Local about text"))

	entry := hook.LastEntry()
	assert.Assert(t, entry != nil)
	assert.Equal(t, entry.Level, logrus.WarnLevel)
	assert.Assert(t, errors.Is(entry.Data[logrus.ErrorKey].(error), site.ErrNoContent))
}

func TestApp_LayoutConfigGeometry(t *testing.T) {
	narrow := layout.DefaultConfig()
	narrow.Gallery.CardWidth = 20

	// 76 columns minus two 4-column insets fit three 22-column pitches.
	h := newHarness(t, tui.AppParams{LayoutConfig: &narrow})
	assert.Equal(t, h.app.Engine().CardsPerView(), 3)
	assert.Equal(t, h.app.Engine().TotalPages(), 3)

	conf := storage.DefaultConfig()
	conf.Gallery.CardWidth = 20
	h = newHarness(t, tui.AppParams{Config: &conf})
	assert.Equal(t, h.app.Engine().CardsPerView(), 3)

	conf = storage.DefaultConfig()
	h = newHarness(t, tui.AppParams{Config: &conf, LayoutConfig: &narrow})
	assert.Equal(t, h.app.Engine().CardsPerView(), 2)
}

func TestApp_ContactCopyEmail(t *testing.T) {
	h := newHarness(t, tui.AppParams{Route: transition.Contact})

	h.press("c")
	assert.DeepEqual(t, h.clip.texts, []string{"ada@example.com"})
	assert.Assert(t, strings.Contains(layout.StripANSI(h.app.View()), "copied"))

	h.advance(3 * time.Second)
	assert.Assert(t, !strings.Contains(layout.StripANSI(h.app.View()), "copied"))
}

func TestApp_ContactClickEmailCopies(t *testing.T) {
	h := newHarness(t, tui.AppParams{Route: transition.Contact})

	// Page content starts at row 3; the email is its third row.
	h.click(10, 5)
	assert.DeepEqual(t, h.clip.texts, []string{"ada@example.com"})
}

func TestApp_ResizeReloadsWhenPageCountChanges(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.send(tea.WindowSizeMsg{Width: 82, Height: 24})
	h.advance(300 * time.Millisecond)
	assert.Equal(t, h.app.Reloads(), 0)

	h.send(tea.WindowSizeMsg{Width: 120, Height: 24})
	h.advance(100 * time.Millisecond)
	h.send(tea.WindowSizeMsg{Width: 121, Height: 24})
	h.advance(300 * time.Millisecond)
	assert.Equal(t, h.app.Reloads(), 1)
	assert.Equal(t, h.app.Engine().CardsPerView(), 3)
	assert.Equal(t, h.app.Engine().TotalPages(), 3)
}

func TestApp_Mouse_Controls(t *testing.T) {
	h := newHarness(t, tui.AppParams{})
	controlsRow := 18

	// next button spans columns 72-77
	h.click(72, controlsRow)
	assert.Equal(t, h.app.Engine().CurrentPage(), 1)
	h.advance(2 * time.Second)

	// prev button spans columns 2-7
	h.click(2, controlsRow)
	assert.Equal(t, h.app.Engine().CurrentPage(), 0)
	h.advance(2 * time.Second)

	// seven dots start at column 33, one every two columns
	h.click(41, controlsRow)
	assert.Equal(t, h.app.Engine().CurrentPage(), 2)
	assert.Equal(t, h.app.FocusedProject().Title, "Echo")
}

func TestApp_Mouse_TabClick(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.click(14, 1)
	assert.Assert(t, h.app.Transitioning())
	h.advance(time.Second)
	assert.Equal(t, h.app.Route(), transition.About)
}

func TestApp_Mouse_LinkRowOpensInsteadOfDragging(t *testing.T) {
	h := newHarness(t, tui.AppParams{})
	linkRow := 15

	h.click(10, linkRow)
	assert.DeepEqual(t, h.opened, []string{"https://alpha.dev"})
	assert.Assert(t, !h.app.Engine().Dragging())
}

func TestApp_Mouse_DragScrolls(t *testing.T) {
	h := newHarness(t, tui.AppParams{})
	engine := h.app.Engine()

	h.click(40, 8)
	assert.Assert(t, engine.Dragging())

	h.send(tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, h.app.ScrollOffset(), 24.0)
	h.advance(100 * time.Millisecond)
	assert.Equal(t, engine.CurrentPage(), 0)
	assert.Equal(t, engine.ActiveCard(), 1)

	h.send(tea.MouseMsg{X: 10, Y: 8, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, h.app.ScrollOffset(), 64.0)
	h.send(tea.MouseMsg{X: 10, Y: 8, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Assert(t, !engine.Dragging())

	h.advance(100 * time.Millisecond)
	assert.Equal(t, engine.CurrentPage(), 1)
	assert.Equal(t, engine.ActiveCard(), 2)
}

func TestApp_Mouse_WheelScrolls(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.send(tea.MouseMsg{X: 20, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelRight})
	assert.Equal(t, h.app.ScrollOffset(), 8.0)

	h.send(tea.MouseMsg{X: 20, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, Shift: true})
	assert.Equal(t, h.app.ScrollOffset(), 12.0)

	// Plain vertical wheel does not scroll the strip.
	h.send(tea.MouseMsg{X: 20, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, h.app.ScrollOffset(), 12.0)
}

func TestApp_HelpToggle(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	h.press("?")
	assert.Equal(t, h.app.Mode(), tui.ModeHelp)

	h.press("l")
	assert.Equal(t, h.app.Engine().CurrentPage(), 0)

	h.press("esc")
	assert.Equal(t, h.app.Mode(), tui.ModeNormal)
}

func TestApp_Quit(t *testing.T) {
	h := newHarness(t, tui.AppParams{})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok)
}

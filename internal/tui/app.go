package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/folio/internal/copier"
	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/search"
	"github.com/nikbrunner/folio/internal/storage"
	"github.com/nikbrunner/folio/internal/timer"
	"github.com/nikbrunner/folio/internal/transition"
	"github.com/nikbrunner/folio/internal/tui/layout"
	"github.com/sirupsen/logrus"
)

// wheelStep is how far one wheel notch scrolls the strip, in columns.
const wheelStep = 4

// App is the main bubbletea model for the portfolio viewer.
type App struct {
	catalog      *model.Catalog
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	log          logrus.FieldLogger

	// Shared runtime state. Timer callbacks mutate it, so it lives behind
	// pointers that survive value-receiver copies of App.
	queue    *cmdQueue
	sched    timer.Scheduler
	teaSched *TeaScheduler // nil when a scheduler is injected
	nav      *navigator
	gallery  *galleryHost
	about    *aboutPage
	notify   *notifier

	copier Copier
	opener func(url string) error
	site   PageFetcher

	mode        Mode
	filterInput textinput.Model

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Catalog      *model.Catalog
	Config       *storage.Config      // optional, uses storage.DefaultConfig if nil
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Scheduler    timer.Scheduler      // optional, uses Bubble Tea ticks if nil
	Copier       Copier               // optional, uses the system clipboard if nil
	Opener       func(url string) error
	Site         PageFetcher // optional, the about page shows catalog text if nil
	Route        transition.Route
	Logger       logrus.FieldLogger
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	// A user config overrides the layout's card geometry.
	conf := storage.DefaultConfig()
	if params.Config != nil {
		conf = *params.Config
		layoutCfg.Gallery.CardWidth = conf.Gallery.CardWidth
		layoutCfg.Gallery.CardGap = conf.Gallery.CardGap
		layoutCfg.Gallery.Inset = conf.Gallery.Inset
	}

	catalog := params.Catalog
	if catalog == nil {
		catalog = model.NewCatalog()
	}

	log := params.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "tui")

	queue := &cmdQueue{}
	var teaSched *TeaScheduler
	sched := params.Scheduler
	if sched == nil {
		teaSched = newTeaScheduler(queue)
		sched = teaSched
	}

	var clip Copier = copier.New(copier.Params{})
	if params.Copier != nil {
		clip = params.Copier
	}

	opener := params.Opener
	if opener == nil {
		opener = OpenURL
	}

	filterInput := textinput.New()
	filterInput.Prompt = "/ "
	filterInput.Placeholder = "Filter projects..."
	filterInput.CharLimit = layoutCfg.Input.FilterCharLimit
	filterInput.Width = layoutCfg.Input.FilterWidth

	app := App{
		catalog:      catalog,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		log:          log,
		queue:        queue,
		sched:        sched,
		teaSched:     teaSched,
		nav:          newNavigator(sched, params.Route, ms(conf.Transition.TimeoutMS), log),
		gallery: newGalleryHost(galleryParams{
			Projects:  catalog.Ordered(),
			Tags:      catalog.Tags(),
			Scheduler: sched,
			Timings: gallery.Timings{
				SettleWindow:   ms(conf.Gallery.SettleMS),
				ScrollDebounce: ms(conf.Gallery.ScrollDebounceMS),
				ResizeDebounce: ms(conf.Gallery.ResizeDebounceMS),
				LayoutRetry:    ms(conf.Gallery.LayoutRetryMS),
			},
			CardWidth: layoutCfg.Gallery.CardWidth,
			Gap:       layoutCfg.Gallery.CardGap,
			Inset:     layoutCfg.Gallery.Inset,
			Logger:    log,
		}),
		about:       newAboutPage(catalog.Profile.About),
		notify:      newNotifier(sched, ms(conf.Toast.VisibleMS), ms(conf.Toast.CopiedMS)),
		copier:      clip,
		opener:      opener,
		site:        params.Site,
		filterInput: filterInput,
		width:       80,
		height:      24,
	}
	app.nav.onArrive = app.arrive

	app.resize()
	app.arrive(params.Route, params.Route)
	return app
}

// arrive re-initialises page modules after a route change. It only touches
// shared state, so it is safe to call on any copy of App.
func (a App) arrive(from, to transition.Route) {
	if from == transition.Projects && to != transition.Projects {
		a.gallery.close()
	}
	switch to {
	case transition.Projects:
		a.gallery.build()
	case transition.About:
		if a.site != nil {
			a.about.loading = true
			a.queue.push(fetchAbout(a.site))
		}
		a.about.vp.GotoTop()
	}
}

// WithDimensions returns a copy of the app sized for a terminal. The resize
// is applied immediately, without waiting for the debounce.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.resize()
	if a.nav.route == transition.Projects && a.nav.active == nil {
		a.gallery.build()
	}
	return a
}

func (a App) resize() {
	page := layout.CalculatePage(a.width, a.height, a.layoutConfig)
	a.gallery.resize(page.Width)
	a.about.resize(page.Width, max(page.Height-2, 0))
}

// Route returns the active route.
func (a App) Route() transition.Route {
	return a.nav.route
}

// Transitioning reports whether a page transition is running.
func (a App) Transitioning() bool {
	return a.nav.active != nil
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Engine returns the gallery paging engine, nil when the projects page is not active.
func (a App) Engine() *gallery.Engine {
	return a.gallery.engine
}

// ScrollOffset returns the strip's scroll offset in columns.
func (a App) ScrollOffset() float64 {
	return a.gallery.viewport.ScrollOffset()
}

// VisibleProjects returns the projects left after filtering, in display order.
func (a App) VisibleProjects() []model.Project {
	out := make([]model.Project, len(a.gallery.visible))
	for i, idx := range a.gallery.visible {
		out[i] = a.gallery.projects[idx]
	}
	return out
}

// FocusedProject returns the focused project card, or nil.
func (a App) FocusedProject() *model.Project {
	return a.gallery.focusedProject()
}

// Flipped reports whether the card for project id shows its back.
func (a App) Flipped(id string) bool {
	return a.gallery.flipped[id]
}

// Criteria returns the active filter.
func (a App) Criteria() search.Criteria {
	return a.gallery.criteria
}

// Message returns the footer toast text.
func (a App) Message() string {
	return a.notify.text
}

// Copied reports whether the copy button is in its copied state.
func (a App) Copied() bool {
	return a.notify.copied
}

// Reloads returns how often the engine was rebuilt after a page-count change.
func (a App) Reloads() int {
	return a.gallery.reloads
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.queue.flush()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.update(msg)
	return m, tea.Batch(cmd, a.queue.flush())
}

func (a App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tickMsg:
		if a.teaSched != nil {
			a.teaSched.deliver(msg)
		}
		return a, nil

	case aboutLoadedMsg:
		a.about.loading = false
		if msg.err != nil {
			a.log.WithError(msg.err).Warn("fetching about page failed, using catalog text")
			return a, nil
		}
		a.about.remote = msg.text
		a.about.refresh()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		switch a.mode {
		case ModeHelp:
			return a.handleHelpMode(msg)
		case ModeFilter:
			return a.handleFilterMode(msg)
		default:
			return a.handleNormalMode(msg)
		}
	}

	return a, nil
}

func (a App) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), msg.String() == "esc":
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.filterInput.Reset()
		a.filterInput.Blur()
		a.mode = ModeNormal
		a.gallery.applyFilter(search.Criteria{Tag: a.gallery.criteria.Tag})
		return a, nil
	case "enter":
		a.filterInput.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.gallery.applyFilter(search.Criteria{
		Tag:   a.gallery.criteria.Tag,
		Query: a.filterInput.Value(),
	})
	return a, cmd
}

func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil
	case key.Matches(msg, a.keys.NextRoute):
		a.navigate(a.nav.cycle(1))
		return a, nil
	case key.Matches(msg, a.keys.PrevRoute):
		a.navigate(a.nav.cycle(-1))
		return a, nil
	}

	// Page keys wait for the transition to land.
	if a.nav.active != nil {
		return a, nil
	}

	switch a.nav.route {
	case transition.Projects:
		return a.handleProjectsKey(msg)
	case transition.About:
		return a.handleAboutKey(msg)
	case transition.Contact:
		return a.handleContactKey(msg)
	}
	return a, nil
}

func (a App) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := a.gallery

	switch {
	case key.Matches(msg, a.keys.PrevPage):
		g.prevPage()
	case key.Matches(msg, a.keys.NextPage):
		g.nextPage()
	case key.Matches(msg, a.keys.FocusPrev):
		g.moveFocus(-1)
	case key.Matches(msg, a.keys.FocusNext):
		g.moveFocus(1)
	case key.Matches(msg, a.keys.JumpToCard):
		g.selectDot(int(msg.Runes[0] - '1'))
	case key.Matches(msg, a.keys.Flip):
		g.toggleFlip()
	case key.Matches(msg, a.keys.Open):
		if p := g.focusedProject(); p != nil {
			a.openLink(p.Link())
		}
	case key.Matches(msg, a.keys.YankURL):
		if p := g.focusedProject(); p != nil {
			a.copyText(p.Link())
		}
	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filterInput.SetValue(g.criteria.Query)
		a.filterInput.CursorEnd()
		cmd := a.filterInput.Focus()
		return a, cmd
	case key.Matches(msg, a.keys.CycleTag):
		g.cycleTag()
	case key.Matches(msg, a.keys.ClearFilter):
		a.filterInput.Reset()
		g.applyFilter(search.Criteria{})
	}
	return a, nil
}

func (a App) handleAboutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ScrollDown):
		a.about.vp.ScrollDown(1)
	case key.Matches(msg, a.keys.ScrollUp):
		a.about.vp.ScrollUp(1)
	}
	return a, nil
}

func (a App) handleContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.CopyEmail) {
		a.copyText(a.catalog.Profile.Email)
	}
	return a, nil
}

// navigate starts a page transition. Filtering ends when the projects page is left.
func (a *App) navigate(to transition.Route) {
	if !a.nav.Go(to) {
		return
	}
	if a.mode == ModeFilter {
		a.filterInput.Blur()
		a.mode = ModeNormal
	}
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.mode == ModeHelp || a.nav.active != nil {
		return a, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == a.layoutConfig.Frame.PaddingTop {
		if i, ok := layout.TabAt(msg.X, a.layoutConfig.Frame.PaddingLeft, tabSeparatorWidth, routeLabels()); ok {
			a.navigate(transition.Routes()[i])
		}
		return a, nil
	}

	switch a.nav.route {
	case transition.Projects:
		a.handleGalleryMouse(msg)
	case transition.About:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			a.about.vp.ScrollDown(1)
		case tea.MouseButtonWheelUp:
			a.about.vp.ScrollUp(1)
		}
	case transition.Contact:
		page := layout.CalculatePage(a.width, a.height, a.layoutConfig)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == page.Top+contactEmailRow {
			a.copyText(a.catalog.Profile.Email)
		}
	}
	return a, nil
}

func (a App) handleGalleryMouse(msg tea.MouseMsg) {
	g := a.gallery
	gl := layout.CalculateGallery(a.width, a.height, a.layoutConfig)

	switch msg.Button {
	case tea.MouseButtonWheelLeft:
		g.scrollBy(-wheelStep)
		return
	case tea.MouseButtonWheelRight:
		g.scrollBy(wheelStep)
		return
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			g.scrollBy(-wheelStep)
		}
		return
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			g.scrollBy(wheelStep)
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionRelease:
		g.engine.PointerUp()

	case tea.MouseActionMotion:
		if !gl.InStrip(msg.Y) {
			g.engine.PointerLeave()
			return
		}
		g.engine.PointerMove(float64(msg.X))

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Y == gl.ControlsTop {
			a.clickControls(msg.X, gl)
			return
		}
		if !gl.InStrip(msg.Y) {
			return
		}

		gc := a.layoutConfig.Gallery
		contentX := msg.X - gl.Page.Left + int(math.Round(g.viewport.ScrollOffset()))
		idx, onCard := layout.CardAt(contentX, gc.Inset, gc.CardWidth, gc.CardGap, len(g.visible))
		if onCard {
			g.setFocus(idx)
		}

		// The link row is an interactive element: it opens instead of dragging.
		interactive := onCard && msg.Y == gl.LinkRow()
		if interactive {
			if p := g.project(idx); p != nil && !g.flipped[p.ID] {
				a.openLink(p.Link())
			}
		}
		g.engine.PointerDown(float64(msg.X), interactive)
	}
}

func (a App) clickControls(x int, gl layout.GalleryLayout) {
	g := a.gallery
	c := layout.CalculateControls(gl.Page.Left, gl.Page.Width, g.dots.n, controlButtonWidth)
	switch {
	case c.OnPrev(x):
		g.prevPage()
	case c.OnNext(x):
		g.nextPage()
	default:
		if i, ok := c.DotAt(x); ok {
			g.selectDot(i)
		}
	}
}

func (a App) openLink(url string) {
	if url == "" {
		a.notify.show("No link for this project", MessageInfo)
		return
	}
	if err := a.opener(url); err != nil {
		a.log.WithError(err).WithField("url", url).Warn("opening link failed")
		a.notify.show(fmt.Sprintf("Could not open %s", url), MessageError)
		return
	}
	a.notify.show("Opened "+url, MessageInfo)
}

// copyText writes text to the clipboard. Failures are logged and absorbed.
func (a App) copyText(text string) {
	method, err := a.copier.Copy(text)
	if err != nil {
		a.log.WithError(err).Warn("copy to clipboard failed")
		return
	}
	a.log.WithField("method", method).Debug("copied to clipboard")
	a.notify.show("Copied", MessageSuccess)
	a.notify.markCopied()
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

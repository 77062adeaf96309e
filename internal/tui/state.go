package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/nikbrunner/folio/internal/timer"
	"github.com/nikbrunner/folio/internal/transition"
	"github.com/sirupsen/logrus"
)

// Mode is the input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
)

// MessageType determines how the footer message is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// notifier holds the footer toast and the copy button's copied state. Both
// clear themselves after a delay.
type notifier struct {
	text   string
	kind   MessageType
	copied bool

	toast     *timer.Timer
	copiedOff *timer.Timer
	toastFor  time.Duration
	copiedFor time.Duration
}

func newNotifier(sched timer.Scheduler, toastFor, copiedFor time.Duration) *notifier {
	return &notifier{
		toast:     timer.New(sched),
		copiedOff: timer.New(sched),
		toastFor:  toastFor,
		copiedFor: copiedFor,
	}
}

// show replaces the current toast.
func (n *notifier) show(text string, kind MessageType) {
	n.text = text
	n.kind = kind
	n.toast.Reset(n.toastFor, func() {
		n.text = ""
		n.kind = MessageInfo
	})
}

// markCopied puts the copy button into its copied state.
func (n *notifier) markCopied() {
	n.copied = true
	n.copiedOff.Reset(n.copiedFor, func() {
		n.copied = false
	})
}

// navigator owns the active route and the page transition in flight.
type navigator struct {
	route   transition.Route
	active  *transition.Transition
	frame   *timer.Timer
	sched   timer.Scheduler
	timeout time.Duration
	log     logrus.FieldLogger

	// onArrive re-initialises page modules once a transition finishes.
	onArrive func(from, to transition.Route)
}

func newNavigator(sched timer.Scheduler, start transition.Route, timeout time.Duration, log logrus.FieldLogger) *navigator {
	return &navigator{
		route:   start,
		frame:   timer.New(sched),
		sched:   sched,
		timeout: timeout,
		log:     log,
	}
}

// Go starts a transition to route to. Navigating to the current route, or
// while another transition is running, does nothing. Returns true if a
// transition started.
func (n *navigator) Go(to transition.Route) bool {
	if n.active != nil {
		n.log.WithField("route", to).Debug("navigation ignored during transition")
		return false
	}
	if to == n.route {
		return false
	}

	from := n.route
	n.active = transition.Start(transition.Params{
		From:      from,
		To:        to,
		Scheduler: n.sched,
		Timeout:   n.timeout,
		OnFinish: func(to transition.Route) {
			n.arrive(from, to)
		},
	})
	n.frame.Reset(time.Second/transition.DefaultFPS, n.step)
	return true
}

func (n *navigator) step() {
	if n.active == nil {
		return
	}
	if !n.active.Frame() {
		n.frame.Reset(time.Second/transition.DefaultFPS, n.step)
	}
}

func (n *navigator) arrive(from, to transition.Route) {
	n.frame.Stop()
	n.active = nil
	n.route = to
	n.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("route changed")
	if n.onArrive != nil {
		n.onArrive(from, to)
	}
}

// cycle moves delta routes along the nav order, wrapping around.
func (n *navigator) cycle(delta int) transition.Route {
	routes := transition.Routes()
	i := (int(n.route) + delta) % len(routes)
	if i < 0 {
		i += len(routes)
	}
	return routes[i]
}

// aboutPage holds the about text and its scroll state.
type aboutPage struct {
	vp      viewport.Model
	local   string
	remote  string
	loading bool
}

func newAboutPage(local string) *aboutPage {
	return &aboutPage{
		vp:    viewport.New(0, 0),
		local: local,
	}
}

// text returns the live site text when it was fetched, else the catalog text.
func (p *aboutPage) text() string {
	if p.remote != "" {
		return p.remote
	}
	return p.local
}

func (p *aboutPage) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
	p.refresh()
}

func (p *aboutPage) refresh() {
	p.vp.SetContent(wrapText(p.text(), p.vp.Width))
}

package scenario

import "fmt"

// ActionKind tags the variants of Action.
type ActionKind string

const (
	KindNavigate ActionKind = "navigate"
	KindClick    ActionKind = "click"
	KindFill     ActionKind = "fill"
)

// Action is a single UI interaction. The set of implementations is closed:
// Navigate, Click and Fill.
type Action interface {
	Kind() ActionKind
	String() string
	isAction()
}

// Navigate opens URL in the page. A relative URL is resolved against the run's
// base URL before the driver sees it.
type Navigate struct {
	URL string
}

// Click clicks the element identified by Target.
type Click struct {
	Target ElementRef
}

// Fill replaces the value of the input identified by Target.
type Fill struct {
	Target ElementRef
	Value  string
}

func (Navigate) Kind() ActionKind { return KindNavigate }
func (Click) Kind() ActionKind    { return KindClick }
func (Fill) Kind() ActionKind     { return KindFill }

func (a Navigate) String() string { return fmt.Sprintf("navigate %s", a.URL) }
func (a Click) String() string    { return fmt.Sprintf("click %s", a.Target) }

// String omits the value; fills routinely carry passwords.
func (a Fill) String() string { return fmt.Sprintf("fill %s", a.Target) }

func (Navigate) isAction() {}
func (Click) isAction()    {}
func (Fill) isAction()     {}

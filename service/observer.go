package services

// Notifier receives a snapshot of a screen's state after every completed
// mutation. Implementations must not call back into the controller.
type Notifier interface {
	Notify(screenID string, kind ScreenKind, state any)
}

type ScreenKind string

const (
	ScreenKindList    ScreenKind = "events_list"
	ScreenKindDetails ScreenKind = "event_details"
)

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(screenID string, kind ScreenKind, state any)

func (f NotifierFunc) Notify(screenID string, kind ScreenKind, state any) {
	f(screenID, kind, state)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, ScreenKind, any) {}

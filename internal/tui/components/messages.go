package components

import "github.com/Veraticus/ecosort/internal/model"

// ClassifyDoneMsg reports that a session request settled. The outcome itself
// lives in the session state.
type ClassifyDoneMsg struct {
	Err error
}

// AnalyticsLoadedMsg reports that an analytics load settled. Superseded
// loads also report here with a nil error.
type AnalyticsLoadedMsg struct {
	Err    error
	Window model.Window
}

// ShowHelpMsg toggles the full help view.
type ShowHelpMsg struct{}

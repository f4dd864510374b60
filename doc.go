// Package ussdflow builds menu-driven USSD applications on top of the
// connectionless carrier protocol: each subscriber keystroke arrives as an
// independent HTTP POST, and the engine reconstructs the conversation from
// a session store before resolving the next menu.
//
// A minimal application is a YAML graph document and three lines of Go:
//
//	app, err := ussdflow.New("menus.yaml")
//	...
//	reply, err := app.Process(ctx, req)
//
// Menus can carry per-menu hooks for input validation, dynamic message
// content and side effects; long pages are split automatically within the
// carrier's character and line budgets; targets may also be absolute URLs,
// handing the rest of the session over to a remote USSD application.
package ussdflow

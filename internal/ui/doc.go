// Package ui contains the Bubble Tea program that powers the author browser.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses go to the comment form while it is open. Otherwise every
//     tea.Msg is routed through a typed handler registry so each message type
//     is handled by a focused function (navigation for keys, backend results,
//     window resizes, spinner ticks).
//   - After each message the detail panel compares the selected post with the
//     one it last saw and starts a comments load when it changed.
//
// State ownership:
//   - Author, post and comment selection state lives in internal/controller,
//     which owns the stores and the fetch generations.
//   - List cursors, the author filter, and viewports live in
//     internal/ui/state.Level, one per focusable list.
//   - The main and detail panel states are resolved by internal/ui/panel so
//     View only decides how each state looks.
//
// Backend interactions:
//   - Controller intents return a backend.Request; loadCmd runs it through the
//     loader in a tea.Cmd and the result re-enters Update as backendEventMsg.
//   - Results are handed back to the controller, which drops anything from a
//     superseded request before the view is refreshed.
package ui

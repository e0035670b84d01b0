// Package ui contains the Bubble Tea program that hosts the command palette.
// The Model is a thin host surface (title, status line, key hints) with the
// palette drawn over it whenever the palette is not hidden.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses go to the lifecycle controller first (toggle and escape),
//     then to the shortcut buffer while the palette is hidden, and to the
//     palette bindings and search input while it is open.
//   - Store subscriptions never touch the terminal directly. They queue
//     commands (a throttled result flush, a phase timer) that finishUpdate
//     hands back to Bubble Tea.
//
// State ownership:
//   - Search text, navigation root, visual phase, the action snapshot and
//     the active index live in internal/store.
//   - The computed rows live in the nav controller; the scroll window lives
//     in a virtual.List that the nav controller scrolls.
//
// Backend interactions:
//   - A backend.Watcher streams tmux session snapshots; each one updates the
//     children of the "Switch session" action through per-session
//     unregister closures.
package ui

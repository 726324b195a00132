// Package ui contains the Bubble Tea program that renders one integration
// selector screen. The Model type focuses on message orchestration, while
// dedicated helpers own navigation, input, fetching, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes, debounce timers, fetch results).
//   - Editing the search prompt hands the term to the selector.Search
//     coordinator. Non-empty terms arm the backend.Debouncer; its tea.Cmd only
//     yields a searchFireMsg when the timer genuinely fires, and the
//     coordinator drops it if the term changed in the meantime.
//   - Remote searches run through the internal/ui/command bus, which owns one
//     cancellable context per fetch lane. Results come back as command.Result
//     messages and are applied only if the coordinator still considers them
//     current.
//
// State ownership:
//   - Selection and search state live in selector.Controller; the model never
//     mutates them directly.
//   - View state (displayed items, cursors, viewport, chip focus) lives in
//     internal/ui/state.Level.
//
// The model is the controller's selector.Host: Pop quits the program and the
// registered header action is drawn in the header and bound to ctrl+s.
package ui

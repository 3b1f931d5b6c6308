// Package ui contains the Bubble Tea program that puts the launcher prompt on
// a terminal. The Model never owns selection state: it is a thin adapter
// between the terminal and the frame driver.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, routed through a
//     typed handler registry so each tea.Msg is handled by a focused function.
//   - Key presses are translated into state.Event values (input.go) and pushed
//     into the Bridge. Window resizes recompute the row capacity and push an
//     Other event so the driver redraws with the new capacity.
//   - The driver goroutine pulls event batches from the Bridge (frame.Source)
//     and publishes snapshots back through it (frame.Renderer). A waiting
//     tea.Cmd turns each snapshot into a frameMsg, which View renders.
//   - When the driver finishes it closes the Bridge; the pending command then
//     yields bridgeClosedMsg and the program quits.
package ui

// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Provider calls are throttled with
// golang.org/x/time/rate and structured provider replies are checked
// with JSON schemas before they touch a document.
package services

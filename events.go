package main

// Event name constants for Wails runtime events
const (
	EventWindowShown  = "window:shown"
	EventContentReady = "content:ready"
)

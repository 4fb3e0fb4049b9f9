// Package tui walks a sequencer through its steps in a terminal. Prompts go
// through a PromptDriver (survey by default), so sessions can be scripted in
// tests. The session doubles as the sequencer's observer and prints step
// headers, progress, validation issues and submission outcomes between
// prompts.
package tui

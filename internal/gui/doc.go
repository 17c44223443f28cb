// Package gui implements the fyne desktop front end. It renders the
// translation controller state and forwards user edits to it.
package gui

// Package controller owns the translator's UI state: the selected
// languages, the input and output buffers and the loading flag. It
// validates input, runs one translation cycle at a time and appends
// streamed chunks to the output in arrival order, pushing every change
// to a View.
package controller

// Package processor contains the logic behind each command-line mode. It
// lists languages and models, runs the relay server, translates files
// through the relay and launches the GUI, wiring the other packages
// together for each.
package processor

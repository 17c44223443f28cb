// Package provider connects the relay to the external text-completion
// services that perform the actual code translation. Each provider turns
// a prompt into a translation.Stream of text fragments; a circuit breaker
// can wrap any provider to fail fast while the upstream keeps failing.
package provider

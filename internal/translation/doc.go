// Package translation defines the code translation request, the rules a
// request must satisfy before it is sent, the instruction template given
// to the model, and the Stream abstraction used to hand translated text
// from the provider to the relay and from the relay to the client.
package translation

// Package relay is the server-side boundary of the code translator. It
// accepts translation requests over HTTP, forwards a prompt to the
// configured provider and pipes the streamed completion back to the
// caller as plain text, chunk by chunk.
package relay

// Package client talks to the relay over HTTP. It posts a translation
// request and exposes the chunked response body as a translation.Stream
// of decoded text.
package client

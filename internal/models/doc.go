// Package models lists the OpenAI chat models available to the configured
// API key, so users can pick one for the relay's --model flag.
package models

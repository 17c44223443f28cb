// Package languages holds the fixed set of programming languages the
// translator offers in its pickers and accepts in translation requests.
package languages

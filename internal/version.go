package internal

// Version is the codetranslator release version
const Version = "v0.1.0"

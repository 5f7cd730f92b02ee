package common

// UnknownStr is the name printed for values outside a known set.
const UnknownStr = "unknown"

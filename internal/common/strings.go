package common

// UnknownStr is the fallback string for enum values outside their declared range.
const UnknownStr = "unknown"

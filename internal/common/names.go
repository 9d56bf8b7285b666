package common

// UnknownStr is returned by String methods for values outside their enum.
const UnknownStr = "unknown"

// NoneStr is printed in place of an absent reference.
const NoneStr = "<none>"

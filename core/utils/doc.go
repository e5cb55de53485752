// Package utils provides loose type conversion helpers.
//
// Upstream payloads encode flags and counters inconsistently (true, 1, "1",
// "true"). ToBool and ToInt collapse those spellings into Go values.
package utils

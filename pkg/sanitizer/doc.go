// Package sanitizer normalizes guest-supplied input before validation:
// whitespace collapsing, markup detection for free-text fields and phone
// normalization to E.164.
package sanitizer

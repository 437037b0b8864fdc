// Package textutil provides text helpers for feed content: Unicode
// normalization, rune-safe length clamping and whitespace cleanup.
//
// Lengths are counted in runes after NFC normalization so decomposed input
// (an "e" followed by a combining accent) is not penalized.
package textutil

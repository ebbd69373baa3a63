package key

import "strings"

// nonLatinThreshold is the first code point of the Greek block.
// Characters at or above it come from layouts whose visible key cannot
// index a Latin-labeled shortcut directly, so normalization falls back
// to the physical key position.
const nonLatinThreshold = 0x0370

// CodePrefix marks a dispatch key bound to a raw physical code,
// bypassing normalization ("code:KeyK").
const CodePrefix = "code:"

// Normalize maps the (visible key, physical code) pair of a key event
// onto the canonical dispatch key.
//
// Multi-character key names ("Enter", "ArrowUp") pass through verbatim.
// A single character below the non-Latin threshold is upper-cased. A
// non-Latin character is resolved through its physical code when the
// code names a letter or digit position; otherwise the upper-cased
// visible key is returned unchanged in meaning.
//
// Known limitation: layouts that place a non-Latin letter on a key
// whose physical position also carries a Latin symbol resolve to the
// Latin position, which may differ from the engraving the user sees.
func Normalize(visibleKey, physicalCode string) string {
	runes := []rune(visibleKey)
	if len(runes) != 1 {
		return visibleKey
	}
	if runes[0] < nonLatinThreshold {
		return strings.ToUpper(visibleKey)
	}
	if letter, ok := letterPosition(physicalCode); ok {
		return letter
	}
	if digit, ok := digitPosition(physicalCode); ok {
		return digit
	}
	return strings.ToUpper(visibleKey)
}

// letterPosition extracts the letter from a "KeyA".."KeyZ" physical code.
func letterPosition(code string) (string, bool) {
	if len(code) != 4 || !strings.HasPrefix(code, "Key") {
		return "", false
	}
	c := code[3]
	if c < 'A' || c > 'Z' {
		return "", false
	}
	return string(c), true
}

// digitPosition extracts the digit from a "Digit0".."Digit9" physical code.
func digitPosition(code string) (string, bool) {
	if len(code) != 6 || !strings.HasPrefix(code, "Digit") {
		return "", false
	}
	c := code[5]
	if c < '0' || c > '9' {
		return "", false
	}
	return string(c), true
}

// CodeKey returns the dispatch key for a raw physical code binding.
func CodeKey(code string) string {
	return CodePrefix + code
}

// IsCodeKey returns true if the dispatch key is a raw physical code
// binding produced by CodeKey or written by a caller.
func IsCodeKey(k string) bool {
	return strings.HasPrefix(k, CodePrefix)
}

// TrimCodeKey strips the code prefix from a code-bound dispatch key.
// Keys without the prefix are returned unchanged.
func TrimCodeKey(k string) string {
	return strings.TrimPrefix(k, CodePrefix)
}

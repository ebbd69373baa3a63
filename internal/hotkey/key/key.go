package key

// specialCodes names the physical keys that bypass the dispatcher's
// typing fast path: they never occur during plain text entry, so
// shortcuts bound to them are always processed.
var specialCodes = map[string]struct{}{
	"Escape":      {},
	"F1":          {},
	"F2":          {},
	"F3":          {},
	"F4":          {},
	"F5":          {},
	"F6":          {},
	"F7":          {},
	"F8":          {},
	"F9":          {},
	"F10":         {},
	"F11":         {},
	"F12":         {},
	"PrintScreen": {},
	"Insert":      {},
}

// IsSpecialCode returns true for physical codes that are always
// processed regardless of the typing fast path (Escape, F1-F12,
// PrintScreen, Insert).
func IsSpecialCode(code string) bool {
	_, ok := specialCodes[code]
	return ok
}

// symbolRanges lists the ASCII code ranges of symbol-class characters:
// the printable punctuation blocks between the alphanumeric ranges.
var symbolRanges = [][2]rune{
	{0x20, 0x2F}, // space ! " # $ % & ' ( ) * + , - . /
	{0x3A, 0x40}, // : ; < = > ? @
	{0x5B, 0x60}, // [ \ ] ^ _ `
	{0x7B, 0x7E}, // { | } ~
}

// IsSymbolKey returns true if k is a single symbol-class character.
// Shift changes which character such a key produces, so binding shift
// together with a symbol key is ambiguous and rejected at registration
// unless the shortcut is code-bound.
func IsSymbolKey(k string) bool {
	runes := []rune(k)
	if len(runes) != 1 {
		return false
	}
	c := runes[0]
	for _, r := range symbolRanges {
		if c >= r[0] && c <= r[1] {
			return true
		}
	}
	return false
}

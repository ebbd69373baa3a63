package term

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywire/internal/hotkey/key"
)

// namedKeys maps tcell named keys to their key label and physical code.
// Labels and codes follow the common platform names ("Escape",
// "ArrowUp", "PageDown").
var namedKeys = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyEnter:  "Enter",
	tcell.KeyTab:    "Tab",
	tcell.KeyDelete: "Delete",
	tcell.KeyInsert: "Insert",
	tcell.KeyHome:   "Home",
	tcell.KeyEnd:    "End",
	tcell.KeyPgUp:   "PageUp",
	tcell.KeyPgDn:   "PageDown",
	tcell.KeyUp:     "ArrowUp",
	tcell.KeyDown:   "ArrowDown",
	tcell.KeyLeft:   "ArrowLeft",
	tcell.KeyRight:  "ArrowRight",
	tcell.KeyPrint:  "PrintScreen",
}

// Translate converts a tcell key event into a dispatcher event.
//
// Terminals collapse ctrl+letter into control characters and drop the
// shift bit on shifted runes; Translate undoes both so the dispatcher
// sees the same (key, code, modifiers) triple a windowing host would
// deliver.
func Translate(ev *tcell.EventKey) *key.BasicEvent {
	mods := translateModifiers(ev.Modifiers())
	k := ev.Key()

	if name, ok := namedKeys[k]; ok {
		return key.NewEvent(name, name, mods)
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		name := fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1)
		return key.NewEvent(name, name, mods)
	}

	// tcell reports both Backspace variants; DEL is the common one.
	if k == tcell.KeyBackspace || k == tcell.KeyBackspace2 {
		return key.NewEvent("Backspace", "Backspace", mods)
	}

	// Control characters arrive as dedicated keys with the ctrl bit
	// already set by tcell; recover the letter.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := rune('a' + k - tcell.KeyCtrlA)
		return key.NewEvent(string(letter), physicalCode(letter), mods.With(key.ModCtrl))
	}

	if k == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		if r == ' ' {
			return key.NewEvent(" ", "Space", mods)
		}
		return key.NewEvent(string(r), physicalCode(r), mods)
	}

	// Unrecognized control key: pass the raw name through with no code.
	return key.NewEvent(tcell.KeyNames[k], "", mods)
}

// physicalCode synthesizes the physical key code for a rune, assuming
// the standard US-layout correspondence tcell exposes. Runes outside
// the letter and digit rows have no synthesized code.
func physicalCode(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	}
	return ""
}

// translateModifiers converts the tcell modifier mask.
func translateModifiers(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

package vtcore

// KeySym names a non-printable key a host keyboard-input layer maps to
// bytes, mirroring the vocabulary libtsm's keyboard handling exposes:
// arrows, editing keys, function keys, and the keypad.
type KeySym int

const (
	KeyNone KeySym = iota
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKeypad0
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadEnter
	KeyKeypadPlus
	KeyKeypadMinus
	KeyKeypadDecimal
)

// KeyMods is a bitmask of modifier keys held alongside a key event.
type KeyMods uint8

const (
	ModShift KeyMods = 1 << iota
	ModAlt
	ModCtrl
)

// arrowFinal gives the final byte CUU/CUD/CUF/CUB-shaped sequences use for
// the four arrow keys; DECCKM (application cursor keys mode) selects the
// CSI or SS3 prefix in front of it.
var arrowFinal = map[KeySym]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
}

// editingCSI gives the CSI ~ parameter for the editing-key cluster.
var editingCSI = map[KeySym]int{
	KeyHome: 1, KeyInsert: 2, KeyDelete: 3, KeyEnd: 4,
	KeyPageUp: 5, KeyPageDown: 6,
}

// functionCSI gives the CSI ~ parameter for F5 upward; F1-F4 instead use
// the SS3 letter form shared with the arrow keys' application-mode style.
var functionCSI = map[KeySym]int{
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
	KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
}

var functionSS3 = map[KeySym]byte{
	KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S',
}

var keypadDigit = map[KeySym]byte{
	KeyKeypad0: '0', KeyKeypad1: '1', KeyKeypad2: '2', KeyKeypad3: '3',
	KeyKeypad4: '4', KeyKeypad5: '5', KeyKeypad6: '6', KeyKeypad7: '7',
	KeyKeypad8: '8', KeyKeypad9: '9',
}

// keypadAppLetter gives the SS3 final letter application keypad mode
// (DECKPAM) sends for each digit, in place of the plain digit byte.
var keypadAppLetter = map[KeySym]byte{
	KeyKeypad0: 'p', KeyKeypad1: 'q', KeyKeypad2: 'r', KeyKeypad3: 's',
	KeyKeypad4: 't', KeyKeypad5: 'u', KeyKeypad6: 'v', KeyKeypad7: 'w',
	KeyKeypad8: 'x', KeyKeypad9: 'y',
}

// HandleKey maps one key event to the bytes it sends the child process,
// honoring DECCKM/DECKPAM application modes the VTE tracks from DECSET,
// and writes them via the VTE's write callback. It reports whether the key
// was recognized; an unrecognized KeySym with a non-zero unicode rune falls
// back to sending that rune's UTF-8 encoding.
func (v *VTE) HandleKey(key KeySym, mods KeyMods, unicode rune) bool {
	if seq, ok := v.keySequence(key, mods); ok {
		if mods&ModAlt != 0 {
			seq = "\x1b" + seq
		}
		v.reply(seq)
		return true
	}

	if unicode != 0 {
		v.reply(v.encodeRune(unicode, mods))
		return true
	}
	return false
}

func (v *VTE) keySequence(key KeySym, mods KeyMods) (string, bool) {
	if final, ok := arrowFinal[key]; ok {
		prefix := "\x1b["
		if v.appCursorKeys {
			prefix = "\x1bO"
		}
		return prefix + string(final), true
	}

	if final, ok := functionSS3[key]; ok {
		return "\x1bO" + string(final), true
	}

	if ps, ok := editingCSI[key]; ok {
		return csiTilde(ps), true
	}

	if ps, ok := functionCSI[key]; ok {
		return csiTilde(ps), true
	}

	if d, ok := keypadDigit[key]; ok {
		if v.appKeypad {
			return "\x1bO" + string(keypadAppLetter[key]), true
		}
		return string(d), true
	}

	switch key {
	case KeyKeypadEnter:
		if v.appKeypad {
			return "\x1bOM", true
		}
		return "\r", true
	case KeyKeypadPlus:
		if v.appKeypad {
			return "\x1bOk", true
		}
		return "+", true
	case KeyKeypadMinus:
		if v.appKeypad {
			return "\x1bOm", true
		}
		return "-", true
	case KeyKeypadDecimal:
		if v.appKeypad {
			return "\x1bOn", true
		}
		return ".", true
	}

	return "", false
}

func csiTilde(ps int) string {
	return "\x1b[" + itoa(ps) + "~"
}

// itoa avoids pulling in strconv for this one call site's tiny integer
// range (1-24); CSI ~ parameters never need more than two digits.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// encodeRune produces the bytes a plain (non-special) key press sends:
// Ctrl held with a letter maps to its C0 control code, Alt prefixes the
// byte sequence with ESC (the common "meta" convention), and everything
// else is sent as UTF-8.
func (v *VTE) encodeRune(r rune, mods KeyMods) string {
	var out []byte

	if mods&ModAlt != 0 {
		out = append(out, 0x1B)
	}

	if mods&ModCtrl != 0 {
		if c, ok := ctrlCode(r); ok {
			out = append(out, c)
			return string(out)
		}
	}

	out = EncodeUTF8(out, UCS4(r))
	return string(out)
}

// ctrlCode maps a letter to the C0 control byte Ctrl+<letter> produces.
func ctrlCode(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r == '@':
		return 0, true
	case r == '[':
		return 0x1B, true
	case r == '\\':
		return 0x1C, true
	case r == ']':
		return 0x1D, true
	case r == '^':
		return 0x1E, true
	case r == '_':
		return 0x1F, true
	}
	return 0, false
}

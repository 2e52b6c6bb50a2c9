package vtcore

// Middleware intercepts VTE dispatch calls, letting a host run custom logic
// before/after one of the parser's screen operations. Each field wraps one
// dispatch point: it receives the operation's original arguments plus a
// next func to invoke the default behavior. A nil field means "no
// interception" and the VTE calls straight through to the screen.
type Middleware struct {
	// Input wraps a printable character write.
	Input func(c UCS4, next func(UCS4))

	// Bell wraps a BEL (0x07).
	Bell func(next func())

	// LineFeed wraps LF/VT/FF.
	LineFeed func(next func())

	// CarriageReturn wraps CR.
	CarriageReturn func(next func())

	// Backspace wraps BS.
	Backspace func(next func())

	// Tab wraps HT advancing n tab stops.
	Tab func(n int, next func(int))

	// Goto wraps absolute cursor positioning (CUP/HVP).
	Goto func(row, col int, next func(int, int))

	// MoveUp/MoveDown/MoveForward/MoveBackward wrap the relative cursor
	// motions (CUU/CUD/CUF/CUB).
	MoveUp      func(n int, next func(int))
	MoveDown    func(n int, next func(int))
	MoveForward func(n int, next func(int))
	MoveBackward func(n int, next func(int))

	// EraseDisplay wraps ED.
	EraseDisplay func(mode EraseMode, next func(EraseMode))

	// EraseLine wraps EL.
	EraseLine func(mode EraseMode, next func(EraseMode))

	// ScrollUp/ScrollDown wrap SU/SD.
	ScrollUp   func(n int, next func(int))
	ScrollDown func(n int, next func(int))

	// SetCharAttribute wraps SGR.
	SetCharAttribute func(attr Attributes, next func(Attributes))

	// SetMode/ResetMode wrap SM/RM and DECSET/DECRST.
	SetMode   func(mode ModeBit, next func(ModeBit))
	ResetMode func(mode ModeBit, next func(ModeBit))

	// SetTitle wraps OSC 0/1/2.
	SetTitle func(title string, next func(string))
}

// Merge overlays non-nil fields from other onto m, letting a host compose
// several middlewares (e.g. one for logging, one for a shell-integration
// feature) without each needing to know about the others.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Input != nil {
		m.Input = other.Input
	}
	if other.Bell != nil {
		m.Bell = other.Bell
	}
	if other.LineFeed != nil {
		m.LineFeed = other.LineFeed
	}
	if other.CarriageReturn != nil {
		m.CarriageReturn = other.CarriageReturn
	}
	if other.Backspace != nil {
		m.Backspace = other.Backspace
	}
	if other.Tab != nil {
		m.Tab = other.Tab
	}
	if other.Goto != nil {
		m.Goto = other.Goto
	}
	if other.MoveUp != nil {
		m.MoveUp = other.MoveUp
	}
	if other.MoveDown != nil {
		m.MoveDown = other.MoveDown
	}
	if other.MoveForward != nil {
		m.MoveForward = other.MoveForward
	}
	if other.MoveBackward != nil {
		m.MoveBackward = other.MoveBackward
	}
	if other.EraseDisplay != nil {
		m.EraseDisplay = other.EraseDisplay
	}
	if other.EraseLine != nil {
		m.EraseLine = other.EraseLine
	}
	if other.ScrollUp != nil {
		m.ScrollUp = other.ScrollUp
	}
	if other.ScrollDown != nil {
		m.ScrollDown = other.ScrollDown
	}
	if other.SetCharAttribute != nil {
		m.SetCharAttribute = other.SetCharAttribute
	}
	if other.SetMode != nil {
		m.SetMode = other.SetMode
	}
	if other.ResetMode != nil {
		m.ResetMode = other.ResetMode
	}
	if other.SetTitle != nil {
		m.SetTitle = other.SetTitle
	}
}

// dispatchInput runs m.Input around fn if set, otherwise calls fn directly.
func (m *Middleware) dispatchInput(c UCS4, fn func(UCS4)) {
	if m != nil && m.Input != nil {
		m.Input(c, fn)
		return
	}
	fn(c)
}

func (m *Middleware) dispatchBell(fn func()) {
	if m != nil && m.Bell != nil {
		m.Bell(fn)
		return
	}
	fn()
}

func (m *Middleware) dispatchLineFeed(fn func()) {
	if m != nil && m.LineFeed != nil {
		m.LineFeed(fn)
		return
	}
	fn()
}

func (m *Middleware) dispatchCarriageReturn(fn func()) {
	if m != nil && m.CarriageReturn != nil {
		m.CarriageReturn(fn)
		return
	}
	fn()
}

func (m *Middleware) dispatchBackspace(fn func()) {
	if m != nil && m.Backspace != nil {
		m.Backspace(fn)
		return
	}
	fn()
}

func (m *Middleware) dispatchTab(n int, fn func(int)) {
	if m != nil && m.Tab != nil {
		m.Tab(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchGoto(row, col int, fn func(int, int)) {
	if m != nil && m.Goto != nil {
		m.Goto(row, col, fn)
		return
	}
	fn(row, col)
}

func (m *Middleware) dispatchMoveUp(n int, fn func(int)) {
	if m != nil && m.MoveUp != nil {
		m.MoveUp(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchMoveDown(n int, fn func(int)) {
	if m != nil && m.MoveDown != nil {
		m.MoveDown(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchMoveForward(n int, fn func(int)) {
	if m != nil && m.MoveForward != nil {
		m.MoveForward(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchMoveBackward(n int, fn func(int)) {
	if m != nil && m.MoveBackward != nil {
		m.MoveBackward(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchEraseDisplay(mode EraseMode, fn func(EraseMode)) {
	if m != nil && m.EraseDisplay != nil {
		m.EraseDisplay(mode, fn)
		return
	}
	fn(mode)
}

func (m *Middleware) dispatchEraseLine(mode EraseMode, fn func(EraseMode)) {
	if m != nil && m.EraseLine != nil {
		m.EraseLine(mode, fn)
		return
	}
	fn(mode)
}

func (m *Middleware) dispatchScrollUp(n int, fn func(int)) {
	if m != nil && m.ScrollUp != nil {
		m.ScrollUp(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchScrollDown(n int, fn func(int)) {
	if m != nil && m.ScrollDown != nil {
		m.ScrollDown(n, fn)
		return
	}
	fn(n)
}

func (m *Middleware) dispatchSetCharAttribute(attr Attributes, fn func(Attributes)) {
	if m != nil && m.SetCharAttribute != nil {
		m.SetCharAttribute(attr, fn)
		return
	}
	fn(attr)
}

func (m *Middleware) dispatchSetMode(mode ModeBit, fn func(ModeBit)) {
	if m != nil && m.SetMode != nil {
		m.SetMode(mode, fn)
		return
	}
	fn(mode)
}

func (m *Middleware) dispatchResetMode(mode ModeBit, fn func(ModeBit)) {
	if m != nil && m.ResetMode != nil {
		m.ResetMode(mode, fn)
		return
	}
	fn(mode)
}

func (m *Middleware) dispatchSetTitle(title string, fn func(string)) {
	if m != nil && m.SetTitle != nil {
		m.SetTitle(title, fn)
		return
	}
	fn(title)
}

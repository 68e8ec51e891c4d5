package lua

type stringState int

const (
	stringInitial stringState = iota
	stringShort
	stringEscape
	stringLongOpen
	stringLongBody
	stringLongClose
	stringEnd
)

// stringMachine recognizes quoted strings and long bracket strings. A long
// bracket opened with n '=' is closed only by a bracket with the same level.
type stringMachine struct {
	state   stringState
	quote   rune
	level   int
	closing int
}

func (m *stringMachine) next(r rune) bool {
	switch m.state {
	case stringInitial:
		switch r {
		case '\'', '"':
			m.quote = r
			m.state = stringShort
		case '[':
			m.state = stringLongOpen
		default:
			return false
		}
	case stringShort:
		switch r {
		case m.quote:
			m.state = stringEnd
		case '\\':
			m.state = stringEscape
		case '\n':
			return false
		}
	case stringEscape:
		// the escaped character is not validated here
		m.state = stringShort
	case stringLongOpen:
		switch r {
		case '=':
			m.level++
		case '[':
			m.state = stringLongBody
		default:
			return false
		}
	case stringLongBody:
		if r == ']' {
			m.closing = 0
			m.state = stringLongClose
		}
	case stringLongClose:
		switch r {
		case '=':
			m.closing++
		case ']':
			if m.closing == m.level {
				m.state = stringEnd
			} else {
				m.closing = 0
			}
		default:
			m.state = stringLongBody
		}
	case stringEnd:
		return false
	}
	return true
}

func (m *stringMachine) final() bool {
	return m.state == stringEnd
}

func (m *stringMachine) reset() {
	*m = stringMachine{}
}

// delimiter returns the width of the opening and closing delimiters.
func (m *stringMachine) delimiter() int {
	if m.quote != 0 {
		return 1
	}
	return m.level + 2
}

// long reports whether the machine is reading a long bracket string.
func (m *stringMachine) long() bool {
	return m.quote == 0
}

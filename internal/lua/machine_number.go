package lua

type numberState int

const (
	numberInitial numberState = iota
	numberZero
	numberDigit
	numberDot
	numberDecimal
	numberExponent
	numberExponentSign
	numberExponentDigit
	numberHexMarker
	numberHexDigit
	numberHexDot
	numberHexDecimal
	numberHexExponent
	numberHexExponentSign
	numberHexExponentDigit
)

// numberMachine recognizes decimal and hexadecimal numerals, both integral and
// fractional, with an optional exponent. The sign of a numeral is not part of
// it, a leading '-' is parsed as a unary operator.
type numberMachine struct {
	state numberState
}

func (m *numberMachine) next(r rune) bool {
	switch m.state {
	case numberInitial:
		switch {
		case r == '0':
			m.state = numberZero
		case isDigit(r):
			m.state = numberDigit
		case r == '.':
			m.state = numberDot
		default:
			return false
		}
	case numberZero, numberDigit:
		switch {
		case isDigit(r):
			m.state = numberDigit
		case r == '.':
			m.state = numberDecimal
		case r == 'e' || r == 'E':
			m.state = numberExponent
		case m.state == numberZero && (r == 'x' || r == 'X'):
			m.state = numberHexMarker
		default:
			return false
		}
	case numberDot:
		if !isDigit(r) {
			return false
		}
		m.state = numberDecimal
	case numberDecimal:
		switch {
		case isDigit(r):
		case r == 'e' || r == 'E':
			m.state = numberExponent
		default:
			return false
		}
	case numberExponent:
		switch {
		case r == '+' || r == '-':
			m.state = numberExponentSign
		case isDigit(r):
			m.state = numberExponentDigit
		default:
			return false
		}
	case numberExponentSign, numberExponentDigit:
		if !isDigit(r) {
			return false
		}
		m.state = numberExponentDigit
	case numberHexMarker:
		switch {
		case isHexDigit(r):
			m.state = numberHexDigit
		case r == '.':
			m.state = numberHexDot
		default:
			return false
		}
	case numberHexDigit:
		switch {
		case isHexDigit(r):
		case r == '.':
			m.state = numberHexDecimal
		case r == 'p' || r == 'P':
			m.state = numberHexExponent
		default:
			return false
		}
	case numberHexDot:
		if !isHexDigit(r) {
			return false
		}
		m.state = numberHexDecimal
	case numberHexDecimal:
		switch {
		case isHexDigit(r):
		case r == 'p' || r == 'P':
			m.state = numberHexExponent
		default:
			return false
		}
	case numberHexExponent:
		switch {
		case r == '+' || r == '-':
			m.state = numberHexExponentSign
		case isDigit(r):
			m.state = numberHexExponentDigit
		default:
			return false
		}
	case numberHexExponentSign, numberHexExponentDigit:
		if !isDigit(r) {
			return false
		}
		m.state = numberHexExponentDigit
	}
	return true
}

func (m *numberMachine) final() bool {
	switch m.state {
	case numberZero, numberDigit, numberDecimal, numberExponentDigit,
		numberHexDigit, numberHexDecimal, numberHexExponentDigit:
		return true
	}
	return false
}

func (m *numberMachine) reset() {
	m.state = numberInitial
}

// matchNumeral reports whether the whole text is a single numeral.
func matchNumeral(text string) bool {
	var m numberMachine
	if text == "" {
		return false
	}
	for _, r := range text {
		if !m.next(r) {
			return false
		}
	}
	return m.final()
}

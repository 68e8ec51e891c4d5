package lua

type commentState int

const (
	commentInitial commentState = iota
	commentFirstDash
	commentSecondDash
	commentOpen
	commentLine
	commentLongBody
	commentLongClose
	commentEnd
)

// commentMachine recognizes line comments and long bracket comments. A line
// comment consumes its terminating newline.
type commentMachine struct {
	state   commentState
	level   int
	closing int
}

func (m *commentMachine) next(r rune) bool {
	switch m.state {
	case commentInitial:
		if r != '-' {
			return false
		}
		m.state = commentFirstDash
	case commentFirstDash:
		if r != '-' {
			return false
		}
		m.state = commentSecondDash
	case commentSecondDash:
		switch r {
		case '[':
			m.state = commentOpen
		case '\n':
			m.state = commentEnd
		default:
			m.state = commentLine
		}
	case commentOpen:
		switch r {
		case '=':
			m.level++
		case '[':
			m.state = commentLongBody
		case '\n':
			m.state = commentEnd
		default:
			m.state = commentLine
		}
	case commentLine:
		if r == '\n' {
			m.state = commentEnd
		}
	case commentLongBody:
		if r == ']' {
			m.closing = 0
			m.state = commentLongClose
		}
	case commentLongClose:
		switch r {
		case '=':
			m.closing++
		case ']':
			if m.closing == m.level {
				m.state = commentEnd
			} else {
				m.closing = 0
			}
		default:
			m.state = commentLongBody
		}
	case commentEnd:
		return false
	}
	return true
}

func (m *commentMachine) final() bool {
	switch m.state {
	case commentSecondDash, commentOpen, commentLine, commentEnd:
		return true
	}
	return false
}

func (m *commentMachine) reset() {
	*m = commentMachine{}
}

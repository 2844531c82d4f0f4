// File: framing/state_machine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// stateMachine is a byte-wise classifier for top-level JSON value
// boundaries. It never builds a parse tree and never validates value
// contents beyond string/escape tracking needed to ignore structural
// bytes inside strings.

package framing

// stateMachine tracks nesting depth and string/escape state one byte
// at a time. The zero value is ready to use.
type stateMachine struct {
	braceDepth   int
	bracketDepth int
	inString     bool
	escaped      bool
	started      bool
}

// reset returns the machine to its initial state, ready for the next
// top-level value.
func (m *stateMachine) reset() {
	*m = stateMachine{}
}

// feed classifies one byte and reports whether it completed a
// top-level value. Transition rules apply in order: escape handling,
// then quote toggling, then string-interior pass-through, then
// structural bytes.
func (m *stateMachine) feed(c byte) bool {
	if m.escaped {
		m.escaped = false
		return false
	}
	if c == '\\' && m.inString {
		m.escaped = true
		return false
	}
	if c == '"' {
		m.inString = !m.inString
		return false
	}
	if m.inString {
		return false
	}

	switch c {
	case '{':
		m.started = true
		m.braceDepth++
	case '}':
		if m.braceDepth > 0 {
			m.braceDepth--
		}
		if m.started && m.braceDepth == 0 && m.bracketDepth == 0 {
			return true
		}
	case '[':
		m.started = true
		m.bracketDepth++
	case ']':
		if m.bracketDepth > 0 {
			m.bracketDepth--
		}
		if m.started && m.braceDepth == 0 && m.bracketDepth == 0 {
			return true
		}
	}
	return false
}

// complete reports whether the machine is currently sitting at a
// value boundary (started and both depths back to zero).
func (m *stateMachine) complete() bool {
	return m.started && m.braceDepth == 0 && m.bracketDepth == 0
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func isValueStart(c byte) bool {
	return c == '{' || c == '['
}

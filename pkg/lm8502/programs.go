package lm8502

// Program is a named, immutable engine program.
type Program struct {
	Name  string
	words []uint16
}

// Words returns a copy of the program words.
func (p Program) Words() []uint16 {
	out := make([]uint16, len(p.words))
	copy(out, p.words)
	return out
}

// Microcode returns the program as a zero-padded download block.
func (p Program) Microcode() Microcode {
	var mc Microcode
	copy(mc[:], p.words)
	return mc
}

var (
	// PulseQuick is the state 1 program.
	PulseQuick = Program{Name: "quick", words: []uint16{
		0x9c0f, 0x9c8f, 0xe004, 0x4000, 0x047f, 0x4c00, 0x047f, 0x4c00,
		0x047f, 0x4c00, 0x057f, 0x4c00, 0xa30a, 0x0000, 0x0000, 0x0007,
		0x9c1f, 0x9c9f, 0xe080, 0x03ff, 0xc800,
	}}

	// PulseQuickShort is the state 2 program.
	PulseQuickShort = Program{Name: "quick-short", words: []uint16{
		0x9c0f, 0x9c8f, 0xe004, 0x4000, 0x047f, 0x4c00, 0x057f, 0x4c00,
		0x057f, 0x4c00, 0x057f, 0x4c00, 0xa30a, 0x0000, 0x0000, 0x0007,
		0x9c1f, 0x9c9f, 0xe080, 0x03ff, 0xc800,
	}}

	// PulseLong is the state 3 program.
	PulseLong = Program{Name: "long", words: []uint16{
		0x9c0f, 0x9c8f, 0xe004, 0x4000, 0x047f, 0x4c00, 0x047f, 0x4c00,
		0x057f, 0x4c00, 0x057f, 0x7c00, 0xa30a, 0x0000, 0x0000, 0x0007,
		0x9c1f, 0x9c9f, 0xe080, 0x03ff, 0xc800,
	}}

	// PulseLongShort is the state 4 program.
	PulseLongShort = Program{Name: "long-short", words: []uint16{
		0x9c0f, 0x9c8f, 0xe004, 0x4000, 0x047f, 0x4c00, 0x057f, 0x4c00,
		0x057f, 0x4c00, 0x057f, 0x6c00, 0xa30a, 0x0000, 0x0000, 0x0007,
		0x9c1f, 0x9c9f, 0xe080, 0x03ff, 0xc800,
	}}

	// PulseDouble is the state 5 program.
	PulseDouble = Program{Name: "double", words: []uint16{
		0x9c0f, 0x9c8f, 0xe004, 0x4000, 0x047f, 0x4c00, 0x057f, 0x4c00,
		0x047f, 0x4c00, 0x057f, 0x7c00, 0xa30a, 0x0000, 0x0000, 0x0007,
		0x9c1f, 0x9c9f, 0xe080, 0x03ff, 0xc800,
	}}

	// Reset turns the outputs off. It is selected for state 0 and for any
	// state without a program of its own.
	Reset = Program{Name: "reset", words: []uint16{
		0x9c0f, 0x9c8f, 0x03ff, 0xc000,
	}}
)

// ProgramFor selects the program for a notification state.
func ProgramFor(state int) Program {
	switch state {
	case 1:
		return PulseQuick
	case 2:
		return PulseQuickShort
	case 3:
		return PulseLong
	case 4:
		return PulseLongShort
	case 5:
		return PulseDouble
	default:
		return Reset
	}
}

// Programs lists the effect programs in state order, starting at state 1.
func Programs() []Program {
	return []Program{PulseQuick, PulseQuickShort, PulseLong, PulseLongShort, PulseDouble}
}

package canvas

// arms is a bitmask of the directions a box-drawing glyph reaches.
type arms uint8

const (
	armN arms = 1 << iota
	armE
	armS
	armW
)

var lightGlyphs = map[arms]rune{
	armN | armS:               '│',
	armE | armW:               '─',
	armE | armS:               '┌',
	armW | armS:               '┐',
	armN | armE:               '└',
	armN | armW:               '┘',
	armN | armE | armS:        '├',
	armN | armW | armS:        '┤',
	armE | armW | armS:        '┬',
	armN | armE | armW:        '┴',
	armN | armE | armS | armW: '┼',
	armN:                      '╵',
	armE:                      '╶',
	armS:                      '╷',
	armW:                      '╴',
}

// CharacterMerger handles the merging of two characters at the same position.
// Light box-drawing glyphs combine by the union of their arms, so a corner
// drawn over a line becomes the matching T-junction.
type CharacterMerger struct {
	armsOf   map[rune]arms
	mergeMap map[mergePair]rune
	sticky   map[rune]bool
}

type mergePair struct {
	existing rune
	new      rune
}

// NewCharacterMerger creates a merger with standard box-drawing merge rules.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{
		armsOf:   make(map[rune]arms, len(lightGlyphs)),
		mergeMap: make(map[mergePair]rune),
		sticky:   make(map[rune]bool),
	}
	for a, r := range lightGlyphs {
		m.armsOf[r] = a
	}

	// ASCII fallbacks
	m.mergeMap[mergePair{'-', '|'}] = '+'
	m.mergeMap[mergePair{'|', '-'}] = '+'
	m.mergeMap[mergePair{'+', '-'}] = '+'
	m.mergeMap[mergePair{'+', '|'}] = '+'

	for _, r := range []rune{HopHorizontal, HopVertical, PinMark} {
		m.sticky[r] = true
	}
	return m
}

// Merge combines two characters according to box-drawing rules.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	if existing == ' ' || existing == '\x00' {
		return new
	}
	if existing == new {
		return existing
	}

	// Hops and pin marks are never overwritten by lines.
	if m.sticky[existing] {
		return existing
	}
	if m.sticky[new] {
		return new
	}

	ea, eok := m.armsOf[existing]
	na, nok := m.armsOf[new]
	if eok && nok {
		return lightGlyphs[ea|na]
	}

	if merged, ok := m.mergeMap[mergePair{existing, new}]; ok {
		return merged
	}
	if merged, ok := m.mergeMap[mergePair{new, existing}]; ok {
		return merged
	}

	// Default: keep existing character
	return existing
}

// IsLineGlyph reports whether r is a light box-drawing glyph.
func (m *CharacterMerger) IsLineGlyph(r rune) bool {
	_, ok := m.armsOf[r]
	return ok
}

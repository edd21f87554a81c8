package types

// Bits8 is a fixed-capacity set of up to 8 indices.
type Bits8 uint8

// Has reports whether bit i is set. Out of range indices are never set.
func (b Bits8) Has(i uint8) bool {
	return i < 8 && b&(1<<i) != 0
}

// With returns b with bit i set.
func (b Bits8) With(i uint8) Bits8 {
	if i >= 8 {
		return b
	}
	return b | 1<<i
}

// Contains reports whether every bit of mask is set in b.
func (b Bits8) Contains(mask Bits8) bool {
	return b&mask == mask
}

// Bits16 is a fixed-capacity set of up to 16 indices.
type Bits16 uint16

// Has reports whether bit i is set. Out of range indices are never set.
func (b Bits16) Has(i uint8) bool {
	return i < 16 && b&(1<<i) != 0
}

// With returns b with bit i set.
func (b Bits16) With(i uint8) Bits16 {
	if i >= 16 {
		return b
	}
	return b | 1<<i
}

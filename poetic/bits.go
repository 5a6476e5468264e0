package poetic

// readBits returns width bits of data starting at bit offset, MSB first.
// Bits past the end of data read as zero.
func readBits(data []byte, offset, width int) int {
	v := 0
	for i := 0; i < width; i++ {
		pos := offset + i
		bit := 0
		if pos/8 < len(data) {
			bit = int(data[pos/8]>>(7-pos%8)) & 1
		}
		v = v<<1 | bit
	}
	return v
}

// writeBits stores the low width bits of v into out at bit offset, MSB first.
// Bits that fall past the end of out are dropped.
func writeBits(out []byte, offset, width, v int) {
	for i := 0; i < width; i++ {
		pos := offset + i
		if pos/8 >= len(out) {
			return
		}
		if (v>>(width-1-i))&1 == 1 {
			out[pos/8] |= 1 << (7 - pos%8)
		}
	}
}

package crocket

// maxLEB128Size is the largest number of bytes a 32-bit unsigned LEB128
// value can occupy (5 groups of 7 bits each).
const maxLEB128Size = 5

// appendLEB128 writes val as an unsigned little-endian base-128 varint,
// appending to dst and returning the extended slice.
func appendLEB128(dst []byte, val uint32) []byte {
	for val >= 0x80 {
		dst = append(dst, byte(val&0x7F)|0x80)
		val >>= 7
	}
	return append(dst, byte(val))
}

// readLEB128 decodes an unsigned LEB128 varint from the front of src,
// reading at most maxLEB128Size bytes (32-bit values only, matching the
// decoder's fixed-width accumulator in the original C). It returns the
// decoded value and the remaining unread bytes. A src that runs out before
// a terminating byte (continuation bit clear) is treated as ending at
// whatever was read, same as the C loop's unconditional byte walk — the
// file format assumes trusted input (§1 Non-goals).
func readLEB128(src []byte) (uint32, []byte) {
	var val uint32
	for shift := uint(0); shift < 32 && len(src) > 0; shift += 7 {
		b := src[0]
		src = src[1:]
		val |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
	}
	return val, src
}

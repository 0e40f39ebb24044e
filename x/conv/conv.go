// Package conv formats unsigned integers into caller-owned buffers, for
// code that runs where fmt and strconv are too heavy.
package conv

const hexDigits = "0123456789abcdef"

// AppendUint appends the decimal form of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var d [20]byte
	i := len(d)
	for {
		i--
		d[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, d[i:]...)
}

// AppendHex32 appends n as "0x" and eight zero-padded hex digits, the form
// register dumps use.
func AppendHex32(dst []byte, n uint32) []byte {
	dst = append(dst, '0', 'x')
	for shift := 28; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[n>>uint(shift)&0xf])
	}
	return dst
}

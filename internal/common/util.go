package common

// WipeByteArray overwrites b with zeros. Used to scrub passwords from memory
// once they have been handed to the transport layer.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

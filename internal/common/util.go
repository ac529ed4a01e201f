package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics if the system random source fails, which crypto/rand documents
// as never happening on supported platforms.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// RandString returns n characters drawn uniformly from alphabet.
func RandString(n int, alphabet string) (string, error) {
	if n <= 0 || alphabet == "" {
		return "", nil
	}
	out := make([]byte, n)
	buf := make([]byte, 1)
	limit := 256 - (256 % len(alphabet))
	for i := 0; i < n; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		// rejection sampling keeps the distribution uniform
		if int(buf[0]) >= limit {
			continue
		}
		out[i] = alphabet[int(buf[0])%len(alphabet)]
		i++
	}
	return string(out), nil
}

// WipeByteArray overwrites the contents of b with zeros.
// Used to drop passwords from memory after use. Nil is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

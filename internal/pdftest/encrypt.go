package pdftest

import (
	"crypto/md5"
	"crypto/rc4"
	"encoding/hex"
	"fmt"
)

// Encryption selects the security handler written into the trailer
type Encryption struct {
	// UserPassword opens the document. Content streams are encrypted with
	// the standard handler, revision 3 (RC4, 128-bit keys).
	UserPassword string

	// AES256 writes a revision 6 dictionary instead. Content is left in the
	// clear; readers without AES-256 support reject the file before reading
	// any stream.
	AES256 bool
}

// passwordPad is the padding string of the standard security handler
var passwordPad = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

// permissions grants everything; -4 keeps the two reserved low bits clear
const permissions int32 = -4

// documentID is the first element of the trailer /ID array
var documentID = md5.Sum([]byte("dyspositif test document"))

// handler encrypts the objects of one document
type handler struct {
	key  []byte
	dict string
}

func newHandler(enc *Encryption) *handler {
	if enc == nil {
		return nil
	}
	if enc.AES256 {
		return &handler{dict: fmt.Sprintf(
			"<< /Filter /Standard /V 5 /R 6 /Length 256 /O <%s> /U <%s> /OE <%s> /UE <%s> /Perms <%s> /P %d >>",
			zeros(48), zeros(48), zeros(32), zeros(32), zeros(16), permissions)}
	}

	owner := ownerEntry(enc.UserPassword)
	key := fileKey(enc.UserPassword, owner)
	user := userEntry(key)
	return &handler{
		key: key,
		dict: fmt.Sprintf("<< /Filter /Standard /V 2 /R 3 /Length 128 /O <%s> /U <%s> /P %d >>",
			hex.EncodeToString(owner), hex.EncodeToString(user), permissions),
	}
}

// stream encrypts the data of object num
func (h *handler) stream(num int, data string) string {
	if h == nil || h.key == nil {
		return data
	}
	sum := md5.Sum(append(append([]byte(nil), h.key...), byte(num), byte(num>>8), byte(num>>16), 0, 0))
	return string(rc4XOR(sum[:], []byte(data)))
}

// trailer returns the extra trailer entries
func (h *handler) trailer() string {
	if h == nil {
		return ""
	}
	id := hex.EncodeToString(documentID[:])
	return fmt.Sprintf(" /Encrypt %s /ID [<%s> <%s>]", h.dict, id, id)
}

func padded(password string) []byte {
	pw := []byte(password)
	if len(pw) >= 32 {
		return pw[:32]
	}
	return append(pw, passwordPad[:32-len(pw)]...)
}

// ownerEntry computes /O with the owner password equal to the user password
func ownerEntry(password string) []byte {
	sum := md5.Sum(padded(password))
	key := sum[:]
	for i := 0; i < 50; i++ {
		next := md5.Sum(key)
		key = next[:]
	}
	return rc4Rounds(key, padded(password))
}

// fileKey derives the document key from the user password
func fileKey(password string, owner []byte) []byte {
	h := md5.New()
	h.Write(padded(password))
	h.Write(owner)
	perm := permissions
	p := uint32(perm)
	h.Write([]byte{byte(p), byte(p >> 8), byte(p >> 16), byte(p >> 24)})
	h.Write(documentID[:])
	key := h.Sum(nil)
	for i := 0; i < 50; i++ {
		next := md5.Sum(key[:16])
		key = next[:]
	}
	return key[:16]
}

// userEntry computes /U: the encrypted hash of the padding and the ID,
// followed by 16 arbitrary bytes
func userEntry(key []byte) []byte {
	h := md5.New()
	h.Write(passwordPad)
	h.Write(documentID[:])
	return append(rc4Rounds(key, h.Sum(nil)), make([]byte, 16)...)
}

// rc4Rounds applies RC4 with key, then 19 times with key XOR i
func rc4Rounds(key, data []byte) []byte {
	out := rc4XOR(key, data)
	round := make([]byte, len(key))
	for i := 1; i <= 19; i++ {
		for j := range key {
			round[j] = key[j] ^ byte(i)
		}
		out = rc4XOR(round, out)
	}
	return out
}

func rc4XOR(key, data []byte) []byte {
	c, err := rc4.NewCipher(key)
	if err != nil {
		panic(err)
	}
	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out
}

func zeros(n int) string {
	return hex.EncodeToString(make([]byte, n))
}

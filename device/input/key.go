// Package input defines the decoded keys that keyboard drivers hand to the
// terminals.
package input

// KeyKind identifies the type of a decoded key.
type KeyKind uint8

// The supported key kinds.
const (
	KeyPrintable KeyKind = iota
	KeyBackspace
	KeyEnter
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyTab

	// KeyFunction is one of the F1-F12 keys; the number is stored in Fn.
	KeyFunction
)

// Key is a decoded key press.
type Key struct {
	Kind KeyKind

	// Char holds the character for KeyPrintable keys.
	Char byte

	// Fn holds the function key number (1-12) for KeyFunction keys.
	Fn uint8
}

// Printable returns a KeyPrintable key for ch.
func Printable(ch byte) Key {
	return Key{Kind: KeyPrintable, Char: ch}
}

// Function returns a KeyFunction key for function key n.
func Function(n uint8) Key {
	return Key{Kind: KeyFunction, Fn: n}
}

// Source is implemented by drivers that produce decoded keys.
type Source interface {
	// ReadIfReady returns the next key without blocking. It returns false
	// if no key is available.
	ReadIfReady() (Key, bool)
}

package ps2

import "kterm/device/input"

// Scancode set 1 bytes with a special meaning.
const (
	scancodeExtended   uint8 = 0xe0
	scancodeReleased   uint8 = 0x80
	scancodeLeftShift  uint8 = 0x2a
	scancodeRightShift uint8 = 0x36
)

// specialKeys maps make codes that do not produce a character; unused entries
// are zero (KeyPrintable). The arrow keys share their codes with the numeric
// keypad so they decode with or without the extended prefix.
var specialKeys = [...]input.Key{
	0x0e: {Kind: input.KeyBackspace},
	0x0f: {Kind: input.KeyTab},
	0x1c: {Kind: input.KeyEnter},
	0x48: {Kind: input.KeyArrowUp},
	0x4b: {Kind: input.KeyArrowLeft},
	0x4d: {Kind: input.KeyArrowRight},
	0x50: {Kind: input.KeyArrowDown},
	0x3b: {Kind: input.KeyFunction, Fn: 1},
	0x3c: {Kind: input.KeyFunction, Fn: 2},
	0x3d: {Kind: input.KeyFunction, Fn: 3},
	0x3e: {Kind: input.KeyFunction, Fn: 4},
	0x3f: {Kind: input.KeyFunction, Fn: 5},
	0x40: {Kind: input.KeyFunction, Fn: 6},
	0x41: {Kind: input.KeyFunction, Fn: 7},
	0x42: {Kind: input.KeyFunction, Fn: 8},
	0x43: {Kind: input.KeyFunction, Fn: 9},
	0x44: {Kind: input.KeyFunction, Fn: 10},
	0x57: {Kind: input.KeyFunction, Fn: 11},
	0x58: {Kind: input.KeyFunction, Fn: 12},
}

// US layout, scancode set 1. A zero entry means the code has no character.
var scancodeToASCII = [...]byte{
	0x02: '1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '=',
	0x10: 'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p', '[', ']',
	0x1e: 'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';', '\'', '`',
	0x2b: '\\', 'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/',
	0x37: '*',
	0x39: ' ',
}

var scancodeToShiftedASCII = [...]byte{
	0x02: '!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '_', '+',
	0x10: 'Q', 'W', 'E', 'R', 'T', 'Y', 'U', 'I', 'O', 'P', '{', '}',
	0x1e: 'A', 'S', 'D', 'F', 'G', 'H', 'J', 'K', 'L', ':', '"', '~',
	0x2b: '|', 'Z', 'X', 'C', 'V', 'B', 'N', 'M', '<', '>', '?',
	0x37: '*',
	0x39: ' ',
}

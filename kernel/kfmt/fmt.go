// Package kfmt implements an allocation-free subset of fmt that the kernel can
// use before (and without) a working Go allocator.
package kfmt

import (
	"io"
	"unsafe"
)

// numBufSize is large enough for any 64-bit value in base 10 plus a sign.
const numBufSize = 24

const digits = "0123456789abcdef"

var (
	errMissingArg = []byte("%!(MISSING)")
	errBadArg     = []byte("%!(BADARG)")
	errBadVerb    = []byte("%!(BADVERB)")
	errNoVerb     = []byte("%!(NOVERB)")
	errExtraArg   = []byte("%!(EXTRA)")
	trueValue     = []byte("true")
	falseValue    = []byte("false")

	numBuf [numBufSize]byte

	// oneByte is a shared buffer for passing single characters to doWrite.
	oneByte = []byte{0}

	// drainBuf is used when replaying earlyBuffer into a new output sink.
	drainBuf [64]byte

	// earlyBuffer captures Printf output until an output sink is installed.
	earlyBuffer ringBuffer

	// outputSink receives Printf output. While nil, output is captured by
	// earlyBuffer.
	outputSink io.Writer
)

// SetOutputSink redirects Printf output to w and replays anything captured in
// the early output buffer.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w == nil {
		return
	}

	for {
		n, err := earlyBuffer.Read(drainBuf[:])
		if n > 0 {
			w.Write(drainBuf[:n])
		}
		if err != nil {
			return
		}
	}
}

// GetOutputSink returns the active output sink. Until SetOutputSink is
// called this is the early output buffer.
func GetOutputSink() io.Writer {
	if outputSink == nil {
		return &earlyBuffer
	}
	return outputSink
}

// Printf writes formatted output to the active output sink. The following
// verbs are supported:
//
//	%d  integers, base 10 (left-padded with spaces)
//	%x  integers, base 16 (left-padded with zeroes)
//	%s  strings and byte slices (left-padded with spaces)
//	%c  a single byte or an ASCII rune
//	%t  booleans
//
// An optional decimal width may precede the verb. Arguments are not checked
// for io.Stringer support since the itables may not be initialized yet.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves like Printf but writes its output to w. A nil w sends the
// output to the early output buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		width    int
		verb     byte
	)

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			writeByte(w, format[i])
			continue
		}

		width = 0
		for i++; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			width = width*10 + int(format[i]-'0')
		}

		if i == len(format) {
			doWrite(w, errNoVerb)
			break
		}

		verb = format[i]
		switch verb {
		case '%':
			writeByte(w, '%')
			continue
		case 'd', 'x', 's', 'c', 't':
		default:
			doWrite(w, errBadVerb)
			continue
		}

		if argIndex >= len(args) {
			doWrite(w, errMissingArg)
			continue
		}

		switch verb {
		case 'd':
			fmtInt(w, args[argIndex], 10, width)
		case 'x':
			fmtInt(w, args[argIndex], 16, width)
		case 's':
			fmtString(w, args[argIndex], width)
		case 'c':
			fmtChar(w, args[argIndex])
		case 't':
			fmtBool(w, args[argIndex])
		}
		argIndex++
	}

	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

func fmtBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errBadArg)
	case b:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

func fmtChar(w io.Writer, v interface{}) {
	switch ch := v.(type) {
	case uint8:
		writeByte(w, ch)
	case int32:
		if ch < 0 || ch > 0x7f {
			doWrite(w, errBadArg)
			return
		}
		writeByte(w, byte(ch))
	default:
		doWrite(w, errBadArg)
	}
}

// fmtString writes a string or byte slice left-padded to width.
func fmtString(w io.Writer, v interface{}, width int) {
	switch str := v.(type) {
	case string:
		pad(w, ' ', width-len(str))
		// converting str to a []byte would allocate.
		for i := 0; i < len(str); i++ {
			writeByte(w, str[i])
		}
	case []byte:
		pad(w, ' ', width-len(str))
		doWrite(w, str)
	default:
		doWrite(w, errBadArg)
	}
}

func pad(w io.Writer, ch byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, ch)
	}
}

// fmtInt writes v in the requested base. Base 10 values are padded with
// spaces and base 16 values with zeroes.
func fmtInt(w io.Writer, v interface{}, base uint64, width int) {
	var (
		uval  uint64
		sval  int64
		neg   bool
		padCh byte = ' '
		pos   = numBufSize
	)

	switch n := v.(type) {
	case uint8:
		uval = uint64(n)
	case uint16:
		uval = uint64(n)
	case uint32:
		uval = uint64(n)
	case uint64:
		uval = n
	case uint:
		uval = uint64(n)
	case uintptr:
		uval = uint64(n)
	case int8:
		sval = int64(n)
	case int16:
		sval = int64(n)
	case int32:
		sval = int64(n)
	case int64:
		sval = n
	case int:
		sval = int64(n)
	default:
		doWrite(w, errBadArg)
		return
	}

	if sval < 0 {
		neg, uval = true, uint64(-sval)
	} else if sval > 0 {
		uval = uint64(sval)
	}

	if width > numBufSize {
		width = numBufSize
	}
	if base == 16 {
		padCh = '0'
	}

	for {
		pos--
		numBuf[pos] = digits[uval%base]
		uval /= base
		if uval == 0 {
			break
		}
	}

	// zero padding goes between the sign and the digits
	if padCh == '0' {
		signLen := 0
		if neg {
			signLen = 1
		}
		for numBufSize-pos < width-signLen {
			pos--
			numBuf[pos] = '0'
		}
	}

	if neg {
		pos--
		numBuf[pos] = '-'
	}

	for numBufSize-pos < width {
		pos--
		numBuf[pos] = padCh
	}

	doWrite(w, numBuf[pos:])
}

func writeByte(w io.Writer, b byte) {
	oneByte[0] = b
	doWrite(w, oneByte)
}

// doWrite hides p from escape analysis. Without this, the call through the
// io.Writer interface makes the compiler flag p as escaping, which turns every
// Printf call into a heap allocation.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
		return
	}
	earlyBuffer.Write(p)
}

// noEscape hides a pointer from escape analysis (see runtime/stubs.go).
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

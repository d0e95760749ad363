package token

// Classify returns the token type of a bare word.
func Classify(w []byte) TokenType {
	switch string(w) {
	case "null":
		return TNull
	case "true":
		return TTrue
	case "false":
		return TFalse
	case "NaN", "Infinity", "+Infinity", "-Infinity":
		return TFloat
	}
	n, isFloat := number(w)
	if n == 0 || n != len(w) {
		return TLiteral
	}
	if isFloat {
		return TFloat
	}
	return TInteger
}

// number returns the length of the numeric prefix of d and whether it has a
// fraction or exponent.
func number(d []byte) (int, bool) {
	i := 0
	if len(d) > 0 && (d[0] == '+' || d[0] == '-') {
		i++
	}
	digits := asciiDigits(d[i:])
	if digits == 0 {
		return 0, false
	}
	i += digits
	f := fract(d[i:])
	i += f
	e := exp(d[i:])
	return i + e, f+e != 0
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) && asciiDigit(d[i]) {
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func fract(d []byte) int {
	if len(d) < 2 || d[0] != '.' {
		return 0
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		return 0
	}
	return n + 1
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return i + n
}

package extractor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotPacked is returned by Unpack when the input holds no packed script.
var ErrNotPacked = errors.New("no packed script")

const alphabet62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	packedArgsRegex = regexp.MustCompile(`(?s)}\s*\(\s*'(.*)'\s*,\s*(\d+|\[\])\s*,\s*(\d+)\s*,\s*'(.*?)'\.split\('\|'\)`)
	packedWordRegex = regexp.MustCompile(`\b\w+\b`)
)

// IsPacked reports whether src contains a p,a,c,k,e,d packed script.
func IsPacked(src string) bool {
	return strings.Contains(src, "eval(function(p,a,c,k,e,")
}

// Unpack decodes the first p,a,c,k,e,d packed script in src.
func Unpack(src string) (string, error) {
	start := strings.Index(src, "eval(function(p,a,c,k,e,")
	if start < 0 {
		return "", ErrNotPacked
	}
	m := packedArgsRegex.FindStringSubmatch(src[start:])
	if m == nil {
		return "", ErrNotPacked
	}

	payload := strings.ReplaceAll(m[1], `\\`, `\`)
	payload = strings.ReplaceAll(payload, `\'`, `'`)

	radix := 62
	if m[2] != "[]" {
		r, err := strconv.Atoi(m[2])
		if err != nil {
			return "", err
		}
		radix = r
	}
	if radix < 2 || radix > len(alphabet62) {
		return "", errors.New("unsupported packer radix " + m[2])
	}
	symtab := strings.Split(m[4], "|")

	return packedWordRegex.ReplaceAllStringFunc(payload, func(word string) string {
		idx, ok := unbase(word, radix)
		if !ok || idx < 0 || idx >= len(symtab) || symtab[idx] == "" {
			return word
		}
		return symtab[idx]
	}), nil
}

func unbase(word string, radix int) (int, bool) {
	if radix <= 36 {
		n, err := strconv.ParseInt(word, radix, 64)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	n := 0
	for _, r := range word {
		d := strings.IndexRune(alphabet62[:radix], r)
		if d < 0 {
			return 0, false
		}
		n = n*radix + d
		if n > 1<<31 {
			return 0, false
		}
	}
	return n, true
}

package metautil

import (
	"regexp"
	"strconv"
	"strings"
)

var isbnPattern = regexp.MustCompile(`[0-9]{9,12}[0-9xX]`)

// NormalizeISBN strips dashes from s, picks the ISBN out of it and returns
// it in 13-digit form. ok is false when no valid ISBN is found.
func NormalizeISBN(s string) (isbn string, ok bool) {
	m := isbnPattern.FindString(strings.ReplaceAll(s, "-", ""))
	switch len(m) {
	case 10:
		if !isbn10Valid(m) {
			return "", false
		}
		return ISBN10To13(m)
	case 13:
		if strings.ContainsAny(m, "xX") || int(m[12]-'0') != isbn13Check(m[:12]) {
			return "", false
		}
		return m, true
	}
	return "", false
}

// isbn10Valid checks the mod-11 check character of a 10 character ISBN.
func isbn10Valid(isbn string) bool {
	sum := 0
	for i, c := range isbn {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case (c == 'x' || c == 'X') && i == 9:
			d = 10
		default:
			return false
		}
		sum += (10 - i) * d
	}
	return sum%11 == 0
}

// ISBN10To13 converts a 10 character ISBN to the 978-prefixed 13-digit
// form with a recomputed check digit.
func ISBN10To13(isbn string) (string, bool) {
	if len(isbn) != 10 {
		return "", false
	}
	body := "978" + isbn[:9]
	for _, c := range body {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return body + strconv.Itoa(isbn13Check(body)), true
}

func isbn13Check(body string) int {
	sum := 0
	for i, c := range body {
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

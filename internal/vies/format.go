package vies

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalize strips whitespace, hyphens and dots from a raw VAT identifier
// and uppercases it, so "be-0417-497-106" becomes "BE0417497106".
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case ' ', '\t', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// formats holds the number-part pattern per member state, applied after
// the two-letter country code has been split off.
var formats = map[string]*regexp.Regexp{
	"AT": regexp.MustCompile(`^U\d{8}$`),
	"BE": regexp.MustCompile(`^[01]\d{9}$`),
	"BG": regexp.MustCompile(`^\d{9,10}$`),
	"CY": regexp.MustCompile(`^\d{8}[A-Z]$`),
	"CZ": regexp.MustCompile(`^\d{8,10}$`),
	"DE": regexp.MustCompile(`^\d{9}$`),
	"DK": regexp.MustCompile(`^\d{8}$`),
	"EE": regexp.MustCompile(`^\d{9}$`),
	"EL": regexp.MustCompile(`^\d{9}$`),
	"ES": regexp.MustCompile(`^[A-Z0-9]\d{7}[A-Z0-9]$`),
	"FI": regexp.MustCompile(`^\d{8}$`),
	"FR": regexp.MustCompile(`^[A-Z0-9]{2}\d{9}$`),
	"HR": regexp.MustCompile(`^\d{11}$`),
	"HU": regexp.MustCompile(`^\d{8}$`),
	"IE": regexp.MustCompile(`^(\d{7}[A-W][A-IW]?|\d[A-Z+*]\d{5}[A-W])$`),
	"IT": regexp.MustCompile(`^\d{11}$`),
	"LT": regexp.MustCompile(`^(\d{9}|\d{12})$`),
	"LU": regexp.MustCompile(`^\d{8}$`),
	"LV": regexp.MustCompile(`^\d{11}$`),
	"MT": regexp.MustCompile(`^\d{8}$`),
	"NL": regexp.MustCompile(`^\d{9}B\d{2}$`),
	"PL": regexp.MustCompile(`^\d{10}$`),
	"PT": regexp.MustCompile(`^\d{9}$`),
	"RO": regexp.MustCompile(`^\d{2,10}$`),
	"SE": regexp.MustCompile(`^\d{10}01$`),
	"SI": regexp.MustCompile(`^\d{8}$`),
	"SK": regexp.MustCompile(`^\d{10}$`),
}

// checksums holds the check-digit validation per member state, for the
// states whose algorithm is stable and well documented. States absent
// from this map are validated on format alone.
var checksums = map[string]func(string) bool{
	"BE": checksumBE,
	"DE": checksumDE,
	"DK": checksumDK,
	"FI": checksumFI,
	"FR": checksumFR,
	"IT": checksumIT,
	"LU": checksumLU,
	"NL": checksumNL,
	"PL": checksumPL,
	"SE": checksumSE,
}

// ValidFormat reports whether a normalized VAT identifier is structurally
// valid: a known EU country code followed by a number that matches the
// state's pattern and, where implemented, its check-digit rule. Invalid
// input must never reach the remote registry.
func ValidFormat(vat string) bool {
	if len(vat) < 4 {
		return false
	}
	cc, num := vat[:2], vat[2:]
	re, ok := formats[cc]
	if !ok {
		return false
	}
	if !re.MatchString(num) {
		return false
	}
	if check, ok := checksums[cc]; ok {
		return check(num)
	}
	return true
}

func digitsToInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// checksumBE: 97 minus the first eight digits modulo 97 must equal the
// final two digits.
func checksumBE(num string) bool {
	base := digitsToInt(num[:8])
	check := digitsToInt(num[8:])
	return 97-base%97 == check
}

// checksumDE: ISO 7064 MOD 11,10 over the first eight digits.
func checksumDE(num string) bool {
	product := 10
	for i := 0; i < 8; i++ {
		sum := (int(num[i]-'0') + product) % 10
		if sum == 0 {
			sum = 10
		}
		product = (2 * sum) % 11
	}
	check := 11 - product
	if check == 10 {
		check = 0
	}
	return check == int(num[8]-'0')
}

// checksumDK: weighted sum with weights 2,7,6,5,4,3,2,1 divisible by 11.
func checksumDK(num string) bool {
	weights := []int{2, 7, 6, 5, 4, 3, 2, 1}
	sum := 0
	for i, w := range weights {
		sum += w * int(num[i]-'0')
	}
	return sum%11 == 0
}

// checksumFI: weighted sum with weights 7,9,10,5,8,4,2 over the first
// seven digits; remainder 1 is never assigned.
func checksumFI(num string) bool {
	weights := []int{7, 9, 10, 5, 8, 4, 2}
	sum := 0
	for i, w := range weights {
		sum += w * int(num[i]-'0')
	}
	r := sum % 11
	switch r {
	case 0:
		return int(num[7]-'0') == 0
	case 1:
		return false
	default:
		return int(num[7]-'0') == 11-r
	}
}

// checksumFR: for the common numeric-key form the key equals
// (12 + 3 * (SIREN mod 97)) mod 97. Alphanumeric keys are accepted on
// format alone.
func checksumFR(num string) bool {
	key := num[:2]
	if !isDigits(key) {
		return true
	}
	siren := digitsToInt(num[2:])
	return (12+3*(siren%97))%97 == digitsToInt(key)
}

// checksumIT: Luhn-style check over the eleven-digit partita IVA.
func checksumIT(num string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		d := int(num[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10-sum%10)%10 == int(num[10]-'0')
}

// checksumLU: the first six digits modulo 89 must equal the final two.
func checksumLU(num string) bool {
	return digitsToInt(num[:6])%89 == digitsToInt(num[6:])
}

// checksumNL: weighted sum with weights 9..2 over the first eight digits
// modulo 11 must equal the ninth digit; the "Bnn" suffix carries no check.
func checksumNL(num string) bool {
	sum := 0
	for i := 0; i < 8; i++ {
		sum += (9 - i) * int(num[i]-'0')
	}
	r := sum % 11
	if r == 10 {
		return false
	}
	return r == int(num[8]-'0')
}

// checksumPL: weighted sum with weights 6,5,7,2,3,4,5,6,7 modulo 11.
func checksumPL(num string) bool {
	weights := []int{6, 5, 7, 2, 3, 4, 5, 6, 7}
	sum := 0
	for i, w := range weights {
		sum += w * int(num[i]-'0')
	}
	r := sum % 11
	if r == 10 {
		return false
	}
	return r == int(num[9]-'0')
}

// checksumSE: Luhn check over the ten-digit organisation number; the
// trailing "01" suffix is guaranteed by the format pattern.
func checksumSE(num string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		d := int(num[i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

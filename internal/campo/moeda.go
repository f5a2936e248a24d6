// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package campo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// normalizaDecimal rewrites a BR or plain decimal string into something
// strconv.ParseFloat accepts. "1.234,56" and "1234,56" both become
// "1234.56"; dot-only strings pass through (NFe XML uses dot decimals).
func normalizaDecimal(s string) string {
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

// Centavos converts a monetary string into cents. Accepts "1.234,56",
// "1234,56", "1234.56" and bare digit strings, which are read as whole
// currency units. Unparseable input degrades to the digits it contains
// (still whole units); negative amounts clamp to zero.
func Centavos(valor string) int64 {
	s := strings.Join(strings.Fields(valor), "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(normalizaDecimal(s), 64)
	if err != nil {
		d := Digitos(s)
		if d == "" {
			return 0
		}
		n, err := strconv.ParseInt(d, 10, 64)
		if err != nil {
			return 0
		}
		v = float64(n)
	}
	if v < 0 {
		v = 0
	}
	return int64(math.Round(v * 100))
}

// CentavosRegistro is the sequence-registry flavor of Centavos: a bare
// digit string is already cents ("123456" -> 123456), everything else
// follows the Centavos rules. The two call sites must not be mixed up;
// the registry key stores cents while title values are decimal strings.
func CentavosRegistro(valor string) int64 {
	s := strings.TrimSpace(valor)
	if s == "" {
		return 0
	}
	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return Centavos(s)
}

// PercentualCentesimos encodes a percentage string as three digits of
// hundredths of a percent: "2,00" -> "200", "9,99" -> "999". Values
// outside [0, 9.99] clamp to the field limits.
func PercentualCentesimos(pct string) string {
	n := int(math.Round(parsePercentual(pct) * 100))
	if n < 0 {
		n = 0
	}
	if n > 999 {
		n = 999
	}
	return fmt.Sprintf("%03d", n)
}

// JurosDiaCentavos computes the daily interest amount in cents for a
// title value and a daily percentage: round(cents * pct/100).
func JurosDiaCentavos(valor, pct string) int64 {
	base := Centavos(valor)
	p := parsePercentual(pct)
	if p <= 0 {
		return 0
	}
	return int64(math.Round(float64(base) * p / 100.0))
}

func parsePercentual(pct string) float64 {
	s := strings.TrimSpace(pct)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(normalizaDecimal(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

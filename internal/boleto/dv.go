// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package boleto implements the boleto-side arithmetic of the BMP (274)
// collection layout: check digits, the due-date factor and the 44-digit
// barcode with its human readable digitable line.
package boleto

import (
	"fmt"

	"github.com/nasapay/cobranca/internal/campo"
)

const (
	// CodigoBanco is the compensation code of the institution.
	CodigoBanco = "274"
	// CodigoMoeda is the currency code for Real.
	CodigoMoeda = "9"
)

// Mod10 computes the Luhn-style modulo 10 check digit used by each
// block of the digitable line: weights alternate 2,1 from the rightmost
// digit and two-digit products collapse by digit sum.
func Mod10(num string) (byte, error) {
	soma, mult := 0, 2
	for i := len(num) - 1; i >= 0; i-- {
		d := int(num[i] - '0')
		if d < 0 || d > 9 {
			return 0, fmt.Errorf("boleto: dígito inválido %q em %q", num[i], num)
		}
		p := d * mult
		if p >= 10 {
			p = p/10 + p%10
		}
		soma += p
		if mult == 2 {
			mult = 1
		} else {
			mult = 2
		}
	}
	dv := (10 - soma%10) % 10
	return byte('0' + dv), nil
}

// DVNossoNumero computes the modulo 11 base 7 check digit of the "nosso
// número": weights cycle 2..7 from the right over carteira(2)+NN(11).
// Remainders 0 and 1 map to '0'.
func DVNossoNumero(carteira, nossoNumero string) (byte, error) {
	seq := campo.ZeroEsquerda(campo.Digitos(carteira), 2) + campo.ZeroEsquerda(campo.Digitos(nossoNumero), 11)
	resto, err := mod11(seq, 7)
	if err != nil {
		return 0, err
	}
	if resto == 0 || resto == 1 {
		return '0', nil
	}
	return byte('0' + 11 - resto), nil
}

// dvCodigoBarras computes the overall barcode check digit over the 43
// significant digits: modulo 11 with weights cycling 2..9 from the
// right. A raw result of 0, 1 or anything above 9 is forced to 1, a
// special case of this check-digit family, not an error.
func dvCodigoBarras(base43 string) (byte, error) {
	resto, err := mod11(base43, 9)
	if err != nil {
		return 0, err
	}
	dv := 11 - resto
	if dv == 0 || dv == 1 || dv > 9 {
		dv = 1
	}
	return byte('0' + dv), nil
}

// mod11 returns the modulo 11 remainder with weights cycling 2..max
// from the rightmost digit.
func mod11(num string, max int) (int, error) {
	soma, peso := 0, 2
	for i := len(num) - 1; i >= 0; i-- {
		d := int(num[i] - '0')
		if d < 0 || d > 9 {
			return 0, fmt.Errorf("boleto: dígito inválido %q em %q", num[i], num)
		}
		soma += d * peso
		peso++
		if peso > max {
			peso = 2
		}
	}
	return soma % 11, nil
}

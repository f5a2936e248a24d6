// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package boleto

import (
	"fmt"
	"strings"
	"time"

	"github.com/nasapay/cobranca/internal/campo"
)

// CampoLivre assembles the 25-digit free field of the 274 layout:
// agência(4) + carteira(2) + nosso número(11) + conta(7) + '0'.
func CampoLivre(agencia, carteira, nossoNumero, conta string) string {
	return campo.ZeroEsquerda(campo.Digitos(agencia), 4) +
		campo.ZeroEsquerda(campo.Digitos(carteira), 2) +
		campo.ZeroEsquerda(campo.Digitos(nossoNumero), 11) +
		campo.ZeroEsquerda(campo.Digitos(conta), 7) +
		"0"
}

// CodigoBarras builds the 44-digit barcode:
// banco(3) + moeda(1) + DV(1) + fator(4) + valor(10) + campo livre(25).
// The overall check digit is computed over the other 43 digits and
// inserted at position 5, not appended.
func CodigoBarras(agencia, carteira, conta, nossoNumero string, vencimento time.Time, valorCentavos int64) (string, error) {
	fator, err := FatorVencimento(vencimento)
	if err != nil {
		return "", err
	}
	if valorCentavos < 0 {
		return "", fmt.Errorf("boleto: valor negativo %d", valorCentavos)
	}
	valor := fmt.Sprintf("%010d", valorCentavos)
	livre := CampoLivre(agencia, carteira, nossoNumero, conta)

	base43 := CodigoBanco + CodigoMoeda + fator + valor + livre
	dv, err := dvCodigoBarras(base43)
	if err != nil {
		return "", err
	}
	return CodigoBanco + CodigoMoeda + string(dv) + fator + valor + livre, nil
}

// LinhaDigitavel re-renders a 44-digit barcode as the five blocks
// printed on the slip:
//
//   AAAAA.BBBBBC BBBBB.CCCCCD CCCCC.DDDDDE F GGGGHHHHHHHHHH
//
// Blocks 1-3 carry their own modulo 10 check digit, block 4 is the
// overall barcode DV verbatim and block 5 is fator+valor.
func LinhaDigitavel(codigoBarras string) (string, error) {
	if len(codigoBarras) != 44 {
		return "", fmt.Errorf("boleto: código de barras com %d dígitos, esperado 44", len(codigoBarras))
	}
	banco := codigoBarras[0:3]
	moeda := codigoBarras[3:4]
	dvGeral := codigoBarras[4:5]
	fator := codigoBarras[5:9]
	valor := codigoBarras[9:19]
	livre := codigoBarras[19:44]

	b1, err := bloco(banco + moeda + livre[0:5])
	if err != nil {
		return "", err
	}
	b2, err := bloco(livre[5:15])
	if err != nil {
		return "", err
	}
	b3, err := bloco(livre[15:25])
	if err != nil {
		return "", err
	}
	return strings.Join([]string{b1, b2, b3, dvGeral, fator + valor}, " "), nil
}

// bloco appends the block's modulo 10 check digit and inserts the dot
// after the fifth digit ("AAAAABBBBB" -> "AAAAA.BBBBBC").
func bloco(num10 string) (string, error) {
	dv, err := Mod10(num10)
	if err != nil {
		return "", err
	}
	return num10[0:5] + "." + num10[5:] + string(dv), nil
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package remessa

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/moov-io/base"

	"github.com/nasapay/cobranca/internal/boleto"
	"github.com/nasapay/cobranca/internal/campo"
)

// Validar re-reads a generated remittance and checks its structural
// invariants: filename pattern and embedded sequence, record lengths
// and literals, our-number check digits and payer document coherence.
// Every violation is reported with its line and column range; nothing
// is auto-repaired.
func Validar(path string) error {
	linhas, err := Ler(path)
	if err != nil {
		return err
	}
	return ValidarLinhas(filepath.Base(path), linhas)
}

func ValidarLinhas(nome string, linhas []string) error {
	el := base.ErrorList{}

	seqNome, err := SequenciaDoNome(nome)
	if err != nil {
		el.Add(err)
	}

	if len(linhas) < 2 {
		el.Add(fmt.Errorf("arquivo com %d registros, esperado header e trailer", len(linhas)))
		return el
	}

	validarHeader(&el, linhas[0], seqNome)
	for i, det := range linhas[1 : len(linhas)-1] {
		validarDetalhe(&el, det, i+2)
	}
	validarTrailer(&el, linhas[len(linhas)-1])

	if el.Empty() {
		return nil
	}
	return el
}

func validarHeader(el *base.ErrorList, h string, seqNome int) {
	if h == "" || h[0] != '0' {
		el.Add(fmt.Errorf("header: registro não começa com '0'"))
		return
	}
	if len(h) != 400 {
		el.Add(fmt.Errorf("header: esperado 400 colunas, veio %d", len(h)))
		return
	}
	if lit := campo.Slice(h, 12, 26); lit != "COBRANCA       " {
		el.Add(fmt.Errorf("header: pos 12-26 deve ser 'COBRANCA', veio %q", lit))
	}
	seq, err := strconv.Atoi(campo.Slice(h, 111, 117))
	if err != nil {
		el.Add(fmt.Errorf("header: pos 111-117 não numérico: %v", err))
		return
	}
	if seq != seqNome {
		el.Add(fmt.Errorf("header: pos 111-117 (%07d) difere do sequencial do nome (%07d)", seq, seqNome))
	}
}

func validarDetalhe(el *base.ErrorList, det string, linha int) {
	if det == "" || det[0] != '1' {
		el.Add(fmt.Errorf("linha %d: registro detalhe não começa com '1'", linha))
		return
	}
	if len(det) != 400 {
		el.Add(fmt.Errorf("linha %d: esperado 400 colunas, veio %d", linha, len(det)))
		return
	}

	// multa: isento exige percentual zerado
	if campo.Slice(det, 66, 66) == "0" {
		if perc := campo.Slice(det, 67, 70); perc != "0000" {
			el.Add(fmt.Errorf("linha %d: código de multa isento (66='0') com percentual não zerado (67-70=%q)", linha, perc))
		}
	}

	// nosso número e DV
	nn := campo.Slice(det, 71, 81)
	if len(campo.Digitos(nn)) != 11 {
		el.Add(fmt.Errorf("linha %d: nosso número (71-81) deve ter 11 dígitos, veio %q", linha, nn))
	} else {
		// a carteira vive no identificador da empresa, últimos 2 de 22-24
		cart3 := campo.Slice(det, 22, 24)
		dv, err := boleto.DVNossoNumero(cart3[len(cart3)-2:], nn)
		if err != nil {
			el.Add(fmt.Errorf("linha %d: %v", linha, err))
		} else if got := campo.Slice(det, 82, 82); got != string(dv) {
			el.Add(fmt.Errorf("linha %d: DV do nosso número (82) esperado %q, veio %q", linha, string(dv), got))
		}
	}

	// documento do pagador
	tipo := campo.Slice(det, 219, 220)
	doc := campo.Digitos(campo.Slice(det, 221, 234))
	if len(doc) != 11 && len(doc) != 14 {
		el.Add(fmt.Errorf("linha %d: inscrição do pagador (221-234) com %d dígitos, esperado 11 ou 14", linha, len(doc)))
	}
	if tipo == "02" && len(doc) != 14 {
		el.Add(fmt.Errorf("linha %d: tipo inscrição '02' (CNPJ) requer 14 dígitos, veio %q", linha, doc))
	}
}

func validarTrailer(el *base.ErrorList, t string) {
	if t == "" || t[0] != '9' {
		el.Add(fmt.Errorf("trailer: registro não começa com '9'"))
		return
	}
	if len(t) != 400 {
		el.Add(fmt.Errorf("trailer: esperado 400 colunas, veio %d", len(t)))
	}
}

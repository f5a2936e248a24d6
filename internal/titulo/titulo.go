// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package titulo defines the unit of business data flowing through the
// pipeline: one título (invoice installment) headed into a remittance.
package titulo

import (
	"fmt"
	"strings"

	"github.com/moov-io/base"

	"github.com/nasapay/cobranca/internal/campo"
)

// Titulo carries one receivable from import to remittance. Amounts and
// dates stay as the source strings; the record builder converts them at
// encoding time. Once handed to the builder a Titulo is never mutated.
type Titulo struct {
	// Origem tags where the título came from ("xml", "bradesco400",
	// "bb240", "manual").
	Origem string

	// Sacado is the payer's name.
	Sacado string
	// SacadoDocumento is the payer's CPF or CNPJ, possibly formatted.
	SacadoDocumento string
	SacadoEndereco  string
	SacadoCidade    string
	SacadoUF        string
	SacadoCEP       string
	SacadoFone      string

	// Documento is the free-text document number. Check-digit suffixes
	// like "-7" are stripped before encoding.
	Documento string

	// Vencimento and Emissao accept DD/MM/YYYY or YYYY-MM-DD.
	Vencimento string
	Emissao    string

	// Valor is the face value as a BR-locale decimal string.
	Valor string

	// NossoNumero is the 11-digit bank identifier, assigned from the
	// sequence registry before the título reaches the builder.
	NossoNumero string
}

// TipoInscricao returns the payer document-type code: "01" for an
// 11-digit CPF, "02" for a 14-digit CNPJ and for anything ambiguous.
func (t Titulo) TipoInscricao() string {
	if len(campo.Digitos(t.SacadoDocumento)) == 11 {
		return "01"
	}
	return "02"
}

// DocumentoPagador returns the payer document right-justified and
// zero-padded to the 14-column wire field.
func (t Titulo) DocumentoPagador() string {
	return campo.DocPagador14(t.SacadoDocumento)
}

// EnderecoCompleto joins address, city and UF into the single free-text
// address the detail record carries.
func (t Titulo) EnderecoCompleto() string {
	partes := []string{}
	for _, p := range []string{t.SacadoEndereco, t.SacadoCidade, t.SacadoUF} {
		if p = strings.TrimSpace(p); p != "" {
			partes = append(partes, p)
		}
	}
	return strings.Join(partes, " ")
}

// Validate reports every problem that would corrupt the título's detail
// record. Titulos failing validation are excluded from the batch and
// reported, never silently encoded.
func (t Titulo) Validate() error {
	el := base.ErrorList{}

	if strings.TrimSpace(t.Sacado) == "" {
		el.Add(fmt.Errorf("sacado: nome vazio"))
	}
	if doc := campo.DocSemDV(t.SacadoDocumento); t.SacadoDocumento != "" {
		if n := len(doc); n != 11 && n != 14 {
			el.Add(fmt.Errorf("sacado: documento %q tem %d dígitos, esperado 11 (CPF) ou 14 (CNPJ)", t.SacadoDocumento, n))
		}
	}
	if _, err := campo.ParseData(t.Vencimento); err != nil {
		el.Add(fmt.Errorf("vencimento: %v", err))
	}
	if t.Emissao != "" {
		if _, err := campo.ParseData(t.Emissao); err != nil {
			el.Add(fmt.Errorf("emissão: %v", err))
		}
	}
	if strings.TrimSpace(t.Valor) == "" {
		el.Add(fmt.Errorf("valor: vazio"))
	}
	if nn := campo.Digitos(t.NossoNumero); len(nn) == 0 || len(nn) > 11 {
		el.Add(fmt.Errorf("nosso número %q: esperado de 1 a 11 dígitos", t.NossoNumero))
	}

	if el.Empty() {
		return nil
	}
	return el
}

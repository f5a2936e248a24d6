// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package retorno reads the bank's CNAB400 return files, maps each
// occurrence to a readable status and optionally re-encodes the file
// in the Bradesco 400 return layout legacy ERPs still ingest.
package retorno

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nasapay/cobranca/internal/campo"
)

// Ocorrencia is one type-'1' record of a return file.
type Ocorrencia struct {
	// Controle is the participant control field, normally the payer
	// name echoed back from the remittance.
	Controle string

	Documento  string
	Vencimento string

	// ValorCentavos is the título amount in cents; Valor is the same
	// amount formatted "1.234,56".
	ValorCentavos int64
	Valor         string

	// Codigo is the raw 2-digit occurrence code, Motivos the raw
	// motive digits and Status the readable description of both.
	Codigo  string
	Motivos string
	Status  string
}

var statusOcorrencia = map[string]string{
	"02": "Entrada confirmada",
	"03": "Entrada rejeitada",
	"06": "Liquidado",
	"09": "Baixado",
	"10": "Baixado",
	"12": "Abatimento concedido",
	"13": "Abatimento cancelado",
	"14": "Vencimento alterado",
	"17": "Liquidado após baixa",
	"23": "Encaminhado a cartório",
	"24": "Retirado de cartório",
	"27": "Baixa rejeitada",
	"32": "Instrução rejeitada",
	"34": "Valor do título alterado",
}

// Status describes an occurrence code and its motive digits.
func Status(codigo, motivos string) string {
	base, ok := statusOcorrencia[codigo]
	if !ok {
		base = fmt.Sprintf("Ocorrência %s", codigo)
	}
	if m := strings.ReplaceAll(motivos, " ", ""); m != "" {
		return fmt.Sprintf("%s (motivos %s)", base, m)
	}
	return base
}

// ErroRegistro reports one detail record that could not be read.
type ErroRegistro struct {
	Linha int
	Err   error
}

func (e ErroRegistro) Error() string {
	return fmt.Sprintf("linha %d: %v", e.Linha, e.Err)
}

// Resultado holds the parsed occurrences along with the records that
// were skipped. Skipping is per-record; a malformed line never aborts
// the file.
type Resultado struct {
	Itens []Ocorrencia
	Erros []ErroRegistro
}

// Parse reads the type-'1' records of a return file. Header and
// trailer lines are skipped; a detail record too short to slice or
// with a non-numeric amount is reported in Resultado.Erros and the
// remaining records are still read.
func Parse(r io.Reader) (*Resultado, error) {
	res := &Resultado{}

	scanner := bufio.NewScanner(r)
	linha := 0
	for scanner.Scan() {
		linha++
		ln := strings.TrimRight(scanner.Text(), "\r\n")
		if ln == "" || ln[0] != '1' {
			continue
		}
		if len(ln) < 328 {
			res.Erros = append(res.Erros, ErroRegistro{Linha: linha, Err: fmt.Errorf("%d colunas, esperado ao menos 328", len(ln))})
			continue
		}

		codigo := campo.Slice(ln, 109, 110)
		motivos := strings.TrimSpace(campo.Slice(ln, 319, 328))
		cents, err := strconv.ParseInt(strings.TrimSpace(campo.Slice(ln, 153, 165)), 10, 64)
		if err != nil {
			res.Erros = append(res.Erros, ErroRegistro{Linha: linha, Err: fmt.Errorf("valor (153-165): %v", err)})
			continue
		}

		res.Itens = append(res.Itens, Ocorrencia{
			Controle:      strings.TrimSpace(campo.Slice(ln, 38, 52)),
			Documento:     strings.TrimSpace(campo.Slice(ln, 117, 126)),
			Vencimento:    dataDDMMAA(campo.Slice(ln, 147, 152)),
			ValorCentavos: cents,
			Valor:         formatarValor(cents),
			Codigo:        codigo,
			Motivos:       motivos,
			Status:        Status(codigo, motivos),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// dataDDMMAA expands a DDMMAA field to DD/MM/20AA, empty when the
// field is blank or malformed.
func dataDDMMAA(s string) string {
	s = strings.TrimSpace(s)
	if len(s) != 6 || campo.Digitos(s) != s {
		return ""
	}
	return s[0:2] + "/" + s[2:4] + "/20" + s[4:6]
}

// formatarValor renders cents as "1.234,56".
func formatarValor(cents int64) string {
	inteiro := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, d := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return fmt.Sprintf("%s,%02d", b.String(), cents%100)
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package titulo

import (
	"strings"
	"testing"
)

func valido() Titulo {
	return Titulo{
		Origem:          "manual",
		Sacado:          "ACME LTDA",
		SacadoDocumento: "12345678000195",
		SacadoEndereco:  "Rua das Flores 100",
		SacadoCidade:    "Sao Paulo",
		SacadoUF:        "SP",
		SacadoCEP:       "01310-100",
		Documento:       "00123",
		Vencimento:      "15/03/2025",
		Emissao:         "01/03/2025",
		Valor:           "1.500,00",
		NossoNumero:     "00000000042",
	}
}

func TestTitulo__validate(t *testing.T) {
	if err := valido().Validate(); err != nil {
		t.Errorf("título válido rejeitado: %v", err)
	}

	tt := valido()
	tt.Sacado = "  "
	if err := tt.Validate(); err == nil {
		t.Error("expected error on blank payer name")
	}

	tt = valido()
	tt.SacadoDocumento = "12345"
	if err := tt.Validate(); err == nil || !strings.Contains(err.Error(), "dígitos") {
		t.Errorf("expected digit-count error, got %v", err)
	}

	tt = valido()
	tt.Vencimento = "31/02/2025"
	if err := tt.Validate(); err == nil {
		t.Error("expected error on impossible due date")
	}

	tt = valido()
	tt.NossoNumero = "123456789012"
	if err := tt.Validate(); err == nil {
		t.Error("expected error on 12-digit our-number")
	}

	// formatted CPF with check-digit punctuation still validates
	tt = valido()
	tt.SacadoDocumento = "123.456.789-09"
	if err := tt.Validate(); err != nil {
		t.Errorf("formatted CPF rejected: %v", err)
	}
}

func TestTitulo__tipoInscricao(t *testing.T) {
	cases := []struct {
		doc, want string
	}{
		{"12345678000195", "02"},
		{"12345678909", "01"},
		{"123.456.789-09", "01"},
		{"", "02"},
		{"999", "02"},
	}
	for _, c := range cases {
		tt := Titulo{SacadoDocumento: c.doc}
		if got := tt.TipoInscricao(); got != c.want {
			t.Errorf("TipoInscricao(%q)=%s, want %s", c.doc, got, c.want)
		}
	}
}

func TestTitulo__documentoPagador(t *testing.T) {
	tt := Titulo{SacadoDocumento: "123.456.789-09"}
	if got := tt.DocumentoPagador(); got != "00012345678909" {
		t.Errorf("got %s", got)
	}
}

func TestTitulo__enderecoCompleto(t *testing.T) {
	tt := valido()
	if got := tt.EnderecoCompleto(); got != "Rua das Flores 100 Sao Paulo SP" {
		t.Errorf("got %q", got)
	}
	tt.SacadoCidade, tt.SacadoUF = "", ""
	if got := tt.EnderecoCompleto(); got != "Rua das Flores 100" {
		t.Errorf("got %q", got)
	}
}

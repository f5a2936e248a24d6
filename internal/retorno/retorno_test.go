// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package retorno

import (
	"strings"
	"testing"

	"github.com/nasapay/cobranca/internal/campo"
)

func linhaRetorno(codigo, motivos string) string {
	r := campo.NovoRegistro('1')
	r.Set(38, 52, "ACME LTDA")
	r.Set(109, 110, codigo)
	r.Set(117, 126, "0000003672")
	r.Set(147, 152, "150325")
	r.SetNum(153, 165, "150000")
	r.Set(319, 328, motivos)
	return r.String()
}

func TestParse(t *testing.T) {
	conteudo := campo.NovoRegistro('0').String() + "\r\n" +
		linhaRetorno("06", "10") + "\r\n" +
		linhaRetorno("03", "") + "\r\n" +
		campo.NovoRegistro('9').String() + "\r\n"

	res, err := Parse(strings.NewReader(conteudo))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Erros) != 0 {
		t.Fatalf("erros=%v", res.Erros)
	}
	itens := res.Itens
	if len(itens) != 2 {
		t.Fatalf("itens=%d", len(itens))
	}

	it := itens[0]
	if it.Controle != "ACME LTDA" {
		t.Errorf("controle=%q", it.Controle)
	}
	if it.Documento != "0000003672" {
		t.Errorf("documento=%q", it.Documento)
	}
	if it.Vencimento != "15/03/2025" {
		t.Errorf("vencimento=%q", it.Vencimento)
	}
	if it.ValorCentavos != 150000 || it.Valor != "1.500,00" {
		t.Errorf("valor=%d %q", it.ValorCentavos, it.Valor)
	}
	if it.Codigo != "06" || it.Motivos != "10" {
		t.Errorf("codigo=%q motivos=%q", it.Codigo, it.Motivos)
	}
	if it.Status != "Liquidado (motivos 10)" {
		t.Errorf("status=%q", it.Status)
	}

	if itens[1].Status != "Entrada rejeitada" {
		t.Errorf("status=%q", itens[1].Status)
	}
}

func TestParse__registroRuim(t *testing.T) {
	semValor := campo.NovoRegistro('1')
	semValor.Set(109, 110, "06")
	semValor.Set(153, 165, "NAO NUMERICO")

	conteudo := "1curta demais\r\n" +
		semValor.String() + "\r\n" +
		linhaRetorno("06", "") + "\r\n"

	res, err := Parse(strings.NewReader(conteudo))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Itens) != 1 || res.Itens[0].Status != "Liquidado" {
		t.Fatalf("itens=%+v", res.Itens)
	}
	if len(res.Erros) != 2 {
		t.Fatalf("erros=%v", res.Erros)
	}
	if res.Erros[0].Linha != 1 || !strings.Contains(res.Erros[0].Error(), "colunas") {
		t.Errorf("erro=%v", res.Erros[0])
	}
	if res.Erros[1].Linha != 2 || !strings.Contains(res.Erros[1].Error(), "valor (153-165)") {
		t.Errorf("erro=%v", res.Erros[1])
	}
}

func TestStatus(t *testing.T) {
	cases := []struct {
		codigo, motivos, want string
	}{
		{"02", "", "Entrada confirmada"},
		{"09", "", "Baixado"},
		{"10", "", "Baixado"},
		{"17", "", "Liquidado após baixa"},
		{"23", "", "Encaminhado a cartório"},
		{"99", "", "Ocorrência 99"},
		{"06", "10 14", "Liquidado (motivos 1014)"},
	}
	for _, tc := range cases {
		if got := Status(tc.codigo, tc.motivos); got != tc.want {
			t.Errorf("Status(%q, %q)=%q, want %q", tc.codigo, tc.motivos, got, tc.want)
		}
	}
}

func TestFormatarValor(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0,00"},
		{150000, "1.500,00"},
		{123456789, "1.234.567,89"},
		{99, "0,99"},
	}
	for _, tc := range cases {
		if got := formatarValor(tc.cents); got != tc.want {
			t.Errorf("formatarValor(%d)=%q, want %q", tc.cents, got, tc.want)
		}
	}
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package remessa assembles, writes and validates BMP (274) remittance
// files: one HEADER, one DETAIL per título and one TRAILER, each 400
// columns wide.
package remessa

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nasapay/cobranca/internal/boleto"
	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/titulo"
	"github.com/nasapay/cobranca/pkg/config"
)

type estado int

const (
	inicio estado = iota
	comHeader
	fechado
)

// Arquivo accumulates the records of one remittance run. Records must
// be written in order: header, details, trailer. Record numbering
// starts at 1 on the header; the trailer carries the record count in
// its sequence field instead of its own position.
type Arquivo struct {
	beneficiario config.Beneficiario

	linhas []string
	estado estado
	// proximo is the sequence number of the next record.
	proximo int
}

func NovoArquivo(b config.Beneficiario) *Arquivo {
	return &Arquivo{beneficiario: b, proximo: 1}
}

// Header writes the opening record with the remittance sequence and
// generation date.
func (a *Arquivo) Header(sequencia int, geracao time.Time) error {
	if a.estado != inicio {
		return errors.New("remessa: header fora de ordem")
	}
	a.linhas = append(a.linhas, montarHeader(a.beneficiario, sequencia, geracao, a.proximo))
	a.proximo++
	a.estado = comHeader
	return nil
}

// Detalhe encodes one título as a type '1' record. A título that fails
// to encode leaves the file untouched.
func (a *Arquivo) Detalhe(t titulo.Titulo) error {
	if a.estado != comHeader {
		return errors.New("remessa: detalhe antes do header ou depois do trailer")
	}
	linha, err := montarDetalhe(t, a.beneficiario, a.proximo)
	if err != nil {
		return err
	}
	a.linhas = append(a.linhas, linha)
	a.proximo++
	return nil
}

// Trailer closes the file. The record count written is headers plus
// details plus the trailer itself.
func (a *Arquivo) Trailer() error {
	if a.estado != comHeader {
		return errors.New("remessa: trailer fora de ordem")
	}
	a.linhas = append(a.linhas, montarTrailer(a.proximo))
	a.estado = fechado
	return nil
}

// Detalhes returns how many detail records were written.
func (a *Arquivo) Detalhes() int {
	switch a.estado {
	case inicio:
		return 0
	case fechado:
		return len(a.linhas) - 2
	}
	return len(a.linhas) - 1
}

// Linhas returns the finished records. It errors until Trailer ran.
func (a *Arquivo) Linhas() ([]string, error) {
	if a.estado != fechado {
		return nil, errors.New("remessa: arquivo não fechado")
	}
	return a.linhas, nil
}

func montarHeader(b config.Beneficiario, sequencia int, geracao time.Time, nro int) string {
	r := campo.NovoRegistro('0')
	r.Set(2, 2, "1")
	r.Set(3, 9, "REMESSA")
	r.Set(10, 11, "01")
	r.Set(12, 26, "COBRANCA")
	r.SetNum(27, 33, "0")
	r.SetNum(34, 37, b.Agencia4())
	r.SetNum(38, 44, b.Cedente7())
	r.SetNum(45, 46, b.Carteira2())
	r.Set(47, 76, strings.ToUpper(campo.Alfanumerico(b.RazaoSocial)))
	r.Set(77, 79, boleto.CodigoBanco)
	r.Set(80, 94, "BMP MONEY PLUS")
	r.Set(95, 100, campo.DataDDMMAA(geracao))
	r.Set(109, 110, "MX")
	r.SetNum(111, 117, fmt.Sprintf("%07d", sequencia))
	r.SetSequencial(nro)
	return r.String()
}

func montarDetalhe(t titulo.Titulo, b config.Beneficiario, nro int) (string, error) {
	venc, err := campo.DDMMAA(t.Vencimento)
	if err != nil {
		return "", fmt.Errorf("vencimento: %v", err)
	}
	// an absent issue date encodes as zeros, an invalid one is an error
	emissao := "000000"
	if strings.TrimSpace(t.Emissao) != "" {
		if emissao, err = campo.DDMMAA(t.Emissao); err != nil {
			return "", fmt.Errorf("emissão: %v", err)
		}
	}

	nn := campo.ZeroEsquerda(campo.Digitos(t.NossoNumero), 11)
	dv, err := boleto.DVNossoNumero(b.Carteira2(), nn)
	if err != nil {
		return "", fmt.Errorf("nosso número: %v", err)
	}

	cep := "00000000"
	if d := campo.Digitos(t.SacadoCEP); d != "" {
		cep = campo.ZeroEsquerda(d, 8)
	}

	r := campo.NovoRegistro('1')
	r.SetNum(2, 6, "0")
	r.SetNum(8, 12, "0")
	r.SetNum(13, 19, "0")
	r.SetNum(21, 22, "0")
	r.SetNum(23, 24, b.Carteira2())
	r.Set(25, 25, "0")
	r.SetNum(26, 29, b.Agencia4())
	r.SetNum(30, 36, b.Conta7())
	r.SetNum(37, 37, campo.Digitos(b.DigitoConta))
	r.SetNum(38, 62, "0")
	r.SetNum(63, 65, "0")
	r.Set(66, 67, "20")
	r.SetNum(68, 70, campo.PercentualCentesimos(b.Multa))
	r.SetNum(71, 81, nn)
	r.Set(82, 82, string(dv))
	r.SetNum(83, 92, "0")
	r.Set(93, 93, "2")
	r.Set(94, 94, "N")
	r.Set(106, 106, "0")
	r.Set(109, 110, "01")
	r.SetNum(111, 120, campo.ZeroEsquerda(campo.DocSemDV(t.Documento), 10))
	r.Set(121, 126, venc)
	r.SetNum(127, 139, fmt.Sprintf("%013d", campo.Centavos(t.Valor)))
	r.SetNum(140, 147, "0")
	r.SetNum(148, 149, campo.ZeroEsquerda(campo.Digitos(b.Especie), 2))
	r.Set(150, 150, "N")
	r.Set(151, 156, emissao)
	r.SetNum(157, 160, "0")
	r.SetNum(161, 173, fmt.Sprintf("%013d", campo.JurosDiaCentavos(t.Valor, b.Juros)))
	r.SetNum(180, 218, "0")
	r.Set(219, 220, t.TipoInscricao())
	r.SetNum(221, 234, t.DocumentoPagador())
	r.Set(235, 274, strings.ToUpper(campo.Alfanumerico(t.Sacado)))
	r.Set(275, 314, strings.ToUpper(campo.Alfanumerico(t.EnderecoCompleto())))
	r.SetNum(327, 334, cep)
	r.SetNum(335, 350, "0")
	r.SetSequencial(nro)
	return r.String(), nil
}

func montarTrailer(qtdeRegistros int) string {
	r := campo.NovoRegistro('9')
	r.SetSequencial(qtdeRegistros)
	return r.String()
}

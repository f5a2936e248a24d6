// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package importacao

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/titulo"
)

// BB240 extracts títulos from a Banco do Brasil CNAB240 remittance.
// Detail records carry '3' at column 8 and a segment code at column
// 14; a título comes from a P segment (charge data) merged with the Q
// segment (payer data) sharing its sequence number at columns 9-13.
func BB240(r io.Reader) (*Resultado, error) {
	res := &Resultado{}

	type segmentoP struct {
		linha      int
		documento  string
		vencimento string
		emissao    string
		valor      string
	}
	type segmentoQ struct {
		sacado    string
		documento string
		endereco  string
		cidade    string
		uf        string
		cep       string
	}
	segP := map[int]segmentoP{}
	segQ := map[int]segmentoQ{}

	scanner := bufio.NewScanner(r)
	linha := 0
	for scanner.Scan() {
		linha++
		ln := strings.TrimRight(scanner.Text(), "\r\n")
		if len(ln) < 240 || ln[7] != '3' {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimSpace(campo.Slice(ln, 9, 13)))
		if err != nil {
			res.Erros = append(res.Erros, ErroRegistro{Linha: linha, Err: fmt.Errorf("sequencial (9-13): %v", err)})
			continue
		}

		switch ln[13] {
		case 'P':
			cents, err := centavosCampo(campo.Slice(ln, 86, 100))
			if err != nil {
				res.Erros = append(res.Erros, ErroRegistro{Linha: linha, Err: fmt.Errorf("valor (86-100): %v", err)})
				continue
			}
			segP[seq] = segmentoP{
				linha:      linha,
				documento:  strings.TrimSpace(campo.Slice(ln, 63, 77)),
				vencimento: dataDDMMAAAA(campo.Slice(ln, 78, 85)),
				emissao:    dataDDMMAAAA(campo.Slice(ln, 111, 118)),
				valor:      valorBR(cents),
			}
		case 'Q':
			tipo := strings.TrimSpace(campo.Slice(ln, 19, 20))
			doc := campo.Digitos(campo.Slice(ln, 21, 35))
			if tipo == "01" {
				doc = campo.ZeroEsquerda(doc, 11)
			} else {
				doc = campo.ZeroEsquerda(doc, 14)
			}
			endereco := strings.TrimSpace(campo.Slice(ln, 76, 115))
			if bairro := strings.TrimSpace(campo.Slice(ln, 116, 130)); bairro != "" {
				endereco = strings.TrimRight(endereco+" - "+bairro, " -")
			}
			segQ[seq] = segmentoQ{
				sacado:    strings.TrimSpace(campo.Slice(ln, 36, 75)),
				documento: doc,
				endereco:  endereco,
				cidade:    strings.TrimSpace(campo.Slice(ln, 139, 153)),
				uf:        strings.TrimSpace(campo.Slice(ln, 154, 155)),
				cep:       campo.Digitos(campo.Slice(ln, 131, 138)),
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var chaves []int
	for k := range segP {
		if _, ok := segQ[k]; ok {
			chaves = append(chaves, k)
		}
	}
	sort.Ints(chaves)

	for _, k := range chaves {
		p, q := segP[k], segQ[k]
		if p.documento == "" {
			res.Erros = append(res.Erros, ErroRegistro{Linha: p.linha, Err: fmt.Errorf("segmento P sem seu número (63-77)")})
			continue
		}
		res.Titulos = append(res.Titulos, titulo.Titulo{
			Origem:          "bb240",
			Sacado:          q.sacado,
			SacadoDocumento: q.documento,
			SacadoEndereco:  q.endereco,
			SacadoCidade:    q.cidade,
			SacadoUF:        q.uf,
			SacadoCEP:       q.cep,
			Documento:       campo.DocSemDV(p.documento),
			Vencimento:      p.vencimento,
			Emissao:         p.emissao,
			Valor:           p.valor,
		})
	}
	return res, nil
}

// dataDDMMAAAA reformats an 8-digit DDMMAAAA field as DD/MM/AAAA,
// passing anything else through untouched.
func dataDDMMAAAA(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 8 && campo.Digitos(s) == s {
		return s[0:2] + "/" + s[2:4] + "/" + s[4:8]
	}
	return s
}

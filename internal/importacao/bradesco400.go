// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package importacao

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/titulo"
)

// Bradesco400 extracts títulos from a Bradesco CNAB400 remittance.
// Only type '1' detail records carry títulos; everything else is
// skipped silently. The Bradesco layout is its own column dictionary,
// unrelated to the BMP one.
func Bradesco400(r io.Reader) (*Resultado, error) {
	res := &Resultado{}

	scanner := bufio.NewScanner(r)
	linha := 0
	for scanner.Scan() {
		linha++
		ln := strings.TrimRight(scanner.Text(), "\r\n")
		if ln == "" || ln[0] != '1' {
			continue
		}
		t, err := detalheBradesco(ln)
		if err != nil {
			res.Erros = append(res.Erros, ErroRegistro{Linha: linha, Err: err})
			continue
		}
		res.Titulos = append(res.Titulos, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func detalheBradesco(ln string) (titulo.Titulo, error) {
	var t titulo.Titulo
	if len(ln) < 314 {
		return t, fmt.Errorf("registro com %d colunas, esperado ao menos 314", len(ln))
	}

	venc, err := time.Parse("020106", campo.Slice(ln, 121, 126))
	if err != nil {
		return t, fmt.Errorf("vencimento (121-126): %v", err)
	}
	emissao, err := time.Parse("020106", campo.Slice(ln, 151, 156))
	if err != nil {
		return t, fmt.Errorf("emissão (151-156): %v", err)
	}
	cents, err := centavosCampo(campo.Slice(ln, 127, 139))
	if err != nil {
		return t, fmt.Errorf("valor (127-139): %v", err)
	}

	t = titulo.Titulo{
		Origem:          "bradesco400",
		Sacado:          strings.TrimSpace(campo.Slice(ln, 235, 274)),
		SacadoDocumento: campo.DocPagador14(campo.Slice(ln, 221, 234)),
		SacadoEndereco:  strings.TrimSpace(campo.Slice(ln, 275, 314)),
		Documento:       campo.DocSemDV(strings.TrimSpace(campo.Slice(ln, 111, 120))),
		Vencimento:      venc.Format("02/01/2006"),
		Emissao:         emissao.Format("02/01/2006"),
		Valor:           valorBR(cents),
	}
	return t, nil
}

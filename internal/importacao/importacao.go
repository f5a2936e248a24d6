// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package importacao extracts títulos from inbound files: Bradesco
// CNAB400 remittances, Banco do Brasil CNAB240 remittances and NFe
// XML invoices. Every extractor produces the same titulo.Titulo shape.
package importacao

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/go-kit/kit/log"
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	stdprom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/encoding/charmap"

	"github.com/nasapay/cobranca/internal/sequencia"
	"github.com/nasapay/cobranca/internal/titulo"
)

var (
	titulosImportados = kitprom.NewCounterFrom(stdprom.CounterOpts{
		Name: "titulos_importados",
		Help: "Count of títulos extracted from inbound files.",
	}, []string{"origem"})
)

// ErroRegistro reports one source record that could not be extracted.
type ErroRegistro struct {
	Linha int
	Err   error
}

func (e ErroRegistro) Error() string {
	return fmt.Sprintf("linha %d: %v", e.Linha, e.Err)
}

// Resultado holds the extracted títulos along with the records that
// were skipped. Skipping is per-record; a malformed line never aborts
// the file.
type Resultado struct {
	Titulos []titulo.Titulo
	Erros   []ErroRegistro
}

// Importador dispatches inbound files to the right extractor and
// enriches extracted títulos with our-numbers already registered.
type Importador struct {
	logger log.Logger
	repo   sequencia.Repository
}

func NovoImportador(logger log.Logger, repo sequencia.Repository) *Importador {
	return &Importador{logger: logger, repo: repo}
}

// ExtrairArquivo picks the extractor by extension: .xml is an NFe
// invoice, .240 a Banco do Brasil CNAB240, .rem and .txt a Bradesco
// CNAB400. CNAB files are Latin-1, XML is UTF-8.
func (i *Importador) ExtrairArquivo(path string) (*Resultado, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var res *Resultado
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		res, err = NFe(bytes.NewReader(bs))
	case ".240":
		res, err = BB240(latin1(bs))
	case ".rem", ".txt":
		res, err = Bradesco400(latin1(bs))
	default:
		return nil, fmt.Errorf("importacao: formato não suportado em %q, use XML, CNAB240 ou CNAB400", filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("importacao: %s: %v", filepath.Base(path), err)
	}

	for idx := range res.Titulos {
		if res.Titulos[idx].NossoNumero != "" {
			continue
		}
		nn, err := i.repo.BuscarNossoNumero(res.Titulos[idx])
		if err != nil {
			return nil, fmt.Errorf("importacao: buscar nosso número: %v", err)
		}
		res.Titulos[idx].NossoNumero = nn
	}

	for _, e := range res.Erros {
		i.logger.Log("importacao", fmt.Sprintf("registro ignorado em %s", filepath.Base(path)), "erro", e.Error())
	}
	if len(res.Titulos) > 0 {
		titulosImportados.With("origem", res.Titulos[0].Origem).Add(float64(len(res.Titulos)))
	}
	return res, nil
}

func latin1(bs []byte) io.Reader {
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bs))
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package remessa

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/nasapay/cobranca/internal/sequencia"
	"github.com/nasapay/cobranca/internal/titulo"
	"github.com/nasapay/cobranca/pkg/config"
	"github.com/nasapay/cobranca/pkg/database"
)

func setupGerador(t *testing.T) (*Gerador, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "remessa-gerador")
	if err != nil {
		t.Fatal(err)
	}
	db := database.CreateTestSqliteDB(t)

	cfg := config.Empty()
	cfg.Beneficiario = beneficiario
	cfg.Pastas.Saida = dir

	g := NovoGerador(log.NewNopLogger(), cfg, sequencia.NewRepo(db.DB))
	return g, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func TestGerador__fluxoCompleto(t *testing.T) {
	g, done := setupGerador(t)
	defer done()

	t1 := tituloACME()
	t1.NossoNumero = "" // minted from the registry

	t2 := tituloACME()
	t2.Documento = "00456"
	t2.Vencimento = "20/03/2025"
	t2.Valor = "250,00"
	t2.NossoNumero = ""

	ruim := tituloACME()
	ruim.Vencimento = "31/02/2025"

	res, err := g.Gerar([]titulo.Titulo{t1, t2, ruim}, geracao())
	if err != nil {
		t.Fatal(err)
	}

	if res.Sequencia != 1 {
		t.Errorf("sequencia=%d", res.Sequencia)
	}
	if filepath.Base(res.Arquivo) != "CB15030000001.REM" {
		t.Errorf("arquivo=%s", res.Arquivo)
	}
	if len(res.Boletos) != 2 {
		t.Fatalf("boletos=%d", len(res.Boletos))
	}
	if len(res.Rejeitados) != 1 {
		t.Fatalf("rejeitados=%d", len(res.Rejeitados))
	}

	// minted our-numbers are sequential
	if nn := res.Boletos[0].Titulo.NossoNumero; nn != "00000000001" {
		t.Errorf("nosso número %q", nn)
	}
	if nn := res.Boletos[1].Titulo.NossoNumero; nn != "00000000002" {
		t.Errorf("nosso número %q", nn)
	}
	if len(res.Boletos[0].CodigoBarras) != 44 {
		t.Errorf("código de barras %q", res.Boletos[0].CodigoBarras)
	}
	if res.Boletos[0].LinhaDigitavel == "" {
		t.Error("linha digitável vazia")
	}

	// generated file passes validation on disk
	if err := Validar(res.Arquivo); err != nil {
		t.Error(err)
	}

	// sidecars
	meta, err := LerMeta(res.Arquivo)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Banco != "274" || meta.QtdeTitulos != 2 || meta.ValorTotal != 175000 {
		t.Errorf("meta=%#v", meta)
	}
	if _, err := os.Stat(res.Zip); err != nil {
		t.Error(err)
	}
}

func TestGerador__nossoNumeroReaproveitado(t *testing.T) {
	g, done := setupGerador(t)
	defer done()

	t1 := tituloACME()
	t1.NossoNumero = ""

	res, err := g.Gerar([]titulo.Titulo{t1}, geracao())
	if err != nil {
		t.Fatal(err)
	}
	primeiro := res.Boletos[0].Titulo.NossoNumero

	// the same título re-sent keeps its registered identifier
	res, err = g.Gerar([]titulo.Titulo{t1}, geracao())
	if err != nil {
		t.Fatal(err)
	}
	if nn := res.Boletos[0].Titulo.NossoNumero; nn != primeiro {
		t.Errorf("got %q, want %q", nn, primeiro)
	}
	if res.Sequencia != 2 {
		t.Errorf("sequencia=%d", res.Sequencia)
	}
}

func TestGerador__nenhumValido(t *testing.T) {
	g, done := setupGerador(t)
	defer done()

	ruim := tituloACME()
	ruim.Valor = "   "
	if _, err := g.Gerar([]titulo.Titulo{ruim}, geracao()); err == nil {
		t.Error("expected error")
	}

	if _, err := g.Gerar(nil, geracao()); err == nil {
		t.Error("expected error")
	}
}

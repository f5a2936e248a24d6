// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package retorno

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/remessa"
	"github.com/nasapay/cobranca/internal/sequencia"
	"github.com/nasapay/cobranca/pkg/config"
	"github.com/nasapay/cobranca/pkg/database"
)

func setupController(t *testing.T, bradesco bool) (*Controller, string, func()) {
	t.Helper()

	db := database.CreateTestSqliteDB(t)
	dir, err := ioutil.TempDir("", "retorno-controller")
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Empty()
	cfg.Pastas.Saida = filepath.Join(dir, "remessas")
	cfg.Pastas.Retorno = filepath.Join(dir, "retornos")
	cfg.Pastas.Processados = filepath.Join(dir, "processados")
	cfg.Retorno.Bradesco = bradesco
	for _, d := range []string{cfg.Pastas.Saida, cfg.Pastas.Retorno} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	ctrl, err := NewController(log.NewNopLogger(), cfg, sequencia.NewRepo(db.DB))
	if err != nil {
		t.Fatal(err)
	}
	return ctrl, dir, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func escreverRetorno(t *testing.T, dir, nome string) string {
	t.Helper()
	linhas := []string{
		campo.NovoRegistro('0').String(),
		linhaRetorno("06", "10"),
		campo.NovoRegistro('9').String(),
	}
	path := filepath.Join(dir, nome)
	if err := remessa.Escrever(path, linhas); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestController__varrer(t *testing.T) {
	ctrl, dir, cleanup := setupController(t, true)
	defer cleanup()

	escreverRetorno(t, ctrl.cfg.Pastas.Retorno, "RETORNO01.RET")

	n, err := ctrl.Varrer()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("processados=%d", n)
	}

	// source moved out of the watched folder
	if _, err := os.Stat(filepath.Join(dir, "processados", "RETORNO01.RET")); err != nil {
		t.Errorf("arquivo não movido: %v", err)
	}

	// bradesco re-encoding written next to the source
	out := filepath.Join(ctrl.cfg.Pastas.Retorno, "RET_BRADESCO_RETORNO01.ret")
	linhas, err := remessa.Ler(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(linhas) != 3 {
		t.Fatalf("linhas=%d", len(linhas))
	}
	if v := campo.Slice(linhas[0], 77, 79); v != "237" {
		t.Errorf("banco=%q", v)
	}
	if v := campo.Slice(linhas[0], 395, 400); v != "000001" {
		t.Errorf("sequencial=%q", v)
	}

	// second sweep finds only our own re-encoding, which is skipped
	n, err = ctrl.Varrer()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("processados=%d", n)
	}
}

func TestController__jaProcessado(t *testing.T) {
	ctrl, _, cleanup := setupController(t, false)
	defer cleanup()
	ctrl.cfg.Pastas.Processados = "" // keep the file in place

	path := escreverRetorno(t, ctrl.cfg.Pastas.Retorno, "RETORNO02.RET")

	if err := ctrl.Processar(path); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Processar(path); err != errJaProcessado {
		t.Errorf("err=%v", err)
	}

	// the sweep treats it as already seen
	n, err := ctrl.Varrer()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("processados=%d", n)
	}
}

func TestController__desabilitado(t *testing.T) {
	cfg := config.Empty()
	cfg.Pastas.Retorno = ""
	ctrl, err := NewController(log.NewNopLogger(), cfg, nil)
	if err != nil || ctrl != nil {
		t.Errorf("ctrl=%v err=%v", ctrl, err)
	}
}

func TestArquivoRetorno(t *testing.T) {
	cases := []struct {
		nome string
		want bool
	}{
		{"RETORNO01.RET", true},
		{"retorno.ret", true},
		{"avisos.txt", true},
		{"RET_BRADESCO_RETORNO01.ret", false},
		{"CB15030000001.REM", false},
		{"notas.xml", false},
	}
	for _, tc := range cases {
		if got := arquivoRetorno(tc.nome); got != tc.want {
			t.Errorf("arquivoRetorno(%q)=%v", tc.nome, got)
		}
	}
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	cfg, err := FromFile(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Logger == nil {
		t.Fatal("nil Logger")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("cfg.Logging.Format=%s", cfg.Logging.Format)
	}

	if cfg.Beneficiario.Agencia != "1234" {
		t.Errorf("Beneficiario=%#v", cfg.Beneficiario)
	}
	if cfg.Beneficiario.DigitoConta != "5" {
		t.Errorf("Beneficiario=%#v", cfg.Beneficiario)
	}
	if cfg.Pastas.Saida != "/tmp/remessas" {
		t.Errorf("Pastas=%#v", cfg.Pastas)
	}
	if !cfg.Retorno.Bradesco {
		t.Errorf("Retorno=%#v", cfg.Retorno)
	}
	if cfg.Database.SQLite == nil || cfg.Database.SQLite.Path != "test-cobranca.db" {
		t.Errorf("Database=%#v", cfg.Database)
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg, err := FromFile(filepath.Join("testdata", "invalid.yaml"))
	if err == nil {
		t.Error("expected error")
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected error")
	}
}

func TestConfig__empty(t *testing.T) {
	cfg := Empty()
	if cfg.Admin.BindAddress == "" {
		t.Error("missing default admin address")
	}
	if cfg.Database.SQLite == nil || cfg.Database.SQLite.Path != "cobranca.db" {
		t.Errorf("Database=%#v", cfg.Database)
	}
}

func TestBeneficiario__padding(t *testing.T) {
	b := Beneficiario{Agencia: "64", Conta: "12345", Carteira: "9", CodigoCedente: "345"}
	if v := b.Agencia4(); v != "0064" {
		t.Errorf("Agencia4()=%s", v)
	}
	if v := b.Conta7(); v != "0012345" {
		t.Errorf("Conta7()=%s", v)
	}
	if v := b.Carteira2(); v != "09" {
		t.Errorf("Carteira2()=%s", v)
	}
	if v := b.Cedente7(); v != "0000345" {
		t.Errorf("Cedente7()=%s", v)
	}
}

func TestRetorno__intervalo(t *testing.T) {
	r := Retorno{Intervalo: "not a schedule"}
	if err := r.Validate(); err == nil {
		t.Error("expected error")
	}
	r.Intervalo = "0 8 * * *"
	if err := r.Validate(); err != nil {
		t.Error(err)
	}
}

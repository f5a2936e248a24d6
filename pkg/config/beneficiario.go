// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/nasapay/cobranca/internal/campo"
)

// Beneficiario holds the creditor's bank account and company identity.
// Every record of a remittance run reads from one immutable copy.
type Beneficiario struct {
	Agencia       string `yaml:"agencia" json:"agencia"`
	Conta         string `yaml:"conta" json:"conta"`
	DigitoConta   string `yaml:"digito_conta" json:"digito_conta" mapstructure:"digito_conta"`
	Carteira      string `yaml:"carteira" json:"carteira"`
	CodigoCedente string `yaml:"codigo_cedente" json:"codigo_cedente" mapstructure:"codigo_cedente"`

	RazaoSocial string `yaml:"razao_social" json:"razao_social" mapstructure:"razao_social"`
	CNPJ        string `yaml:"cnpj" json:"cnpj"`

	// Multa and Juros are monthly percentages in BR locale ("2,00").
	Multa string `yaml:"multa"`
	Juros string `yaml:"juros"`

	// Especie is the 2-digit document species code ("01" duplicata).
	Especie string `yaml:"especie"`

	// Instructions and sacador/avalista are passed through to whatever
	// renders the printable boleto; the remittance records don't carry
	// them.
	Instrucao1 string `yaml:"instrucao1"`
	Instrucao2 string `yaml:"instrucao2"`
	Instrucao3 string `yaml:"instrucao3"`

	SacadorAvalistaRazao string `yaml:"sacador_avalista_razao" json:"sacador_avalista_razao" mapstructure:"sacador_avalista_razao"`
	SacadorAvalistaCNPJ  string `yaml:"sacador_avalista_cnpj" json:"sacador_avalista_cnpj" mapstructure:"sacador_avalista_cnpj"`
}

// Agencia4 returns the agency zero padded to its 4-column field.
func (b Beneficiario) Agencia4() string {
	return campo.ZeroEsquerda(campo.Digitos(b.Agencia), 4)
}

// Conta7 returns the account zero padded to its 7-column field.
func (b Beneficiario) Conta7() string {
	return campo.ZeroEsquerda(campo.Digitos(b.Conta), 7)
}

// Carteira2 returns the wallet zero padded to 2 digits.
func (b Beneficiario) Carteira2() string {
	return campo.ZeroEsquerda(campo.Digitos(b.Carteira), 2)
}

// Cedente7 returns the creditor code zero padded to 7 digits.
func (b Beneficiario) Cedente7() string {
	return campo.ZeroEsquerda(campo.Digitos(b.CodigoCedente), 7)
}

func (b Beneficiario) Validate() error {
	if v := campo.Digitos(b.Agencia); len(v) == 0 || len(v) > 4 {
		return fmt.Errorf("agencia %q: esperado de 1 a 4 dígitos", b.Agencia)
	}
	if v := campo.Digitos(b.Conta); len(v) == 0 || len(v) > 7 {
		return fmt.Errorf("conta %q: esperado de 1 a 7 dígitos", b.Conta)
	}
	if v := campo.Digitos(b.DigitoConta); len(v) != 1 {
		return fmt.Errorf("digito_conta %q: esperado 1 dígito", b.DigitoConta)
	}
	if v := campo.Digitos(b.Carteira); len(v) == 0 || len(v) > 2 {
		return fmt.Errorf("carteira %q: esperado de 1 a 2 dígitos", b.Carteira)
	}
	if v := campo.Digitos(b.CodigoCedente); len(v) == 0 || len(v) > 7 {
		return fmt.Errorf("codigo_cedente %q: esperado de 1 a 7 dígitos", b.CodigoCedente)
	}
	if strings.TrimSpace(b.RazaoSocial) == "" {
		return fmt.Errorf("razao_social vazia")
	}
	if b.CNPJ != "" {
		if v := campo.Digitos(b.CNPJ); len(v) != 14 {
			return fmt.Errorf("cnpj %q: esperado 14 dígitos", b.CNPJ)
		}
	}
	return nil
}

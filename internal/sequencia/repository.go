// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package sequencia persists the monotonic counters and the título
// registry backing remittance generation: the per-account "nosso
// número" sequence, the 7-digit remittance sequence and the memory of
// which título already received which identifier.
package sequencia

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	kitprom "github.com/go-kit/kit/metrics/prometheus"
	stdprom "github.com/prometheus/client_golang/prometheus"

	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/titulo"
	"github.com/nasapay/cobranca/pkg/config"
	"github.com/nasapay/cobranca/pkg/database"
)

var (
	nossoNumerosEmitidos = kitprom.NewCounterFrom(stdprom.CounterOpts{
		Name: "nosso_numeros_emitidos",
		Help: "Count of our-number identifiers minted from the sequence registry.",
	}, nil)
)

type Repository interface {
	// ProximoNossoNumero mints the next 11-digit our-number for the
	// creditor account. Identifiers increase monotonically and survive
	// restarts.
	ProximoNossoNumero(b config.Beneficiario) (string, error)

	// ProximaRemessa mints the next 7-digit remittance sequence.
	ProximaRemessa() (int, error)

	// ProximoRetornoBradesco mints the sequence used to number
	// re-encoded Bradesco return files.
	ProximoRetornoBradesco() (int, error)

	// BuscarNossoNumero returns the our-number already assigned to an
	// equivalent título, or "" when none is registered.
	BuscarNossoNumero(t titulo.Titulo) (string, error)

	// RegistrarTitulos records the títulos of a generated remittance.
	// Existing entries are only touched when override is set.
	RegistrarTitulos(ts []titulo.Titulo, b config.Beneficiario, arquivo string, override bool) error

	// RegistrarRemessa logs one generated remittance file.
	RegistrarRemessa(arquivo string, sequencia, qtdeTitulos int, valorTotal int64) error

	// MarcarRetornoProcessado logs one parsed return file. A second
	// call for the same filename reports database.UniqueViolation.
	MarcarRetornoProcessado(arquivo string, ocorrencias int) error
}

func NewRepo(db *sql.DB) Repository {
	return &sqlRepo{db: db}
}

type sqlRepo struct {
	db *sql.DB
}

func (r *sqlRepo) proximo(nome string) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}

	query := `insert into sequenciais(nome, valor) values(?, 1) on conflict(nome) do update set valor = valor + 1;`
	if _, err := tx.Exec(query, nome); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("sequencia %s: %v", nome, err)
	}

	var valor int
	if err := tx.QueryRow(`select valor from sequenciais where nome = ?;`, nome).Scan(&valor); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("sequencia %s: %v", nome, err)
	}
	return valor, tx.Commit()
}

func (r *sqlRepo) ProximoNossoNumero(b config.Beneficiario) (string, error) {
	nome := fmt.Sprintf("nosso_numero:%s:%s:%s", b.Agencia4(), b.Conta7(), b.Carteira2())
	n, err := r.proximo(nome)
	if err != nil {
		return "", err
	}
	nossoNumerosEmitidos.Add(1)
	return campo.ZeroEsquerda(fmt.Sprintf("%d", n), 11), nil
}

func (r *sqlRepo) ProximaRemessa() (int, error) {
	return r.proximo("remessa")
}

func (r *sqlRepo) ProximoRetornoBradesco() (int, error) {
	return r.proximo("retorno_bradesco")
}

// chave returns the canonical registry key of a título.
func chave(t titulo.Titulo) (documento, vencimento string, centavos int64, docPagador string) {
	return campo.DocSemDV(t.Documento),
		strings.TrimSpace(t.Vencimento),
		campo.CentavosRegistro(t.Valor),
		campo.Digitos(t.SacadoDocumento)
}

func (r *sqlRepo) BuscarNossoNumero(t titulo.Titulo) (string, error) {
	query := `select nosso_numero from titulos where documento = ? and vencimento = ? and valor_centavos = ? and doc_pagador = ? order by criado_em desc limit 1;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	doc, venc, cents, docPag := chave(t)

	var nn string
	if err := stmt.QueryRow(doc, venc, cents, docPag).Scan(&nn); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return nn, nil
}

func (r *sqlRepo) RegistrarTitulos(ts []titulo.Titulo, b config.Beneficiario, arquivo string, override bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	insert := `insert into titulos(documento, vencimento, valor_centavos, doc_pagador, sacado, nosso_numero, agencia, conta, carteira, arquivo, criado_em) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	update := `update titulos set nosso_numero = ?, sacado = ?, arquivo = ?, criado_em = ? where documento = ? and vencimento = ? and valor_centavos = ? and doc_pagador = ?;`

	now := time.Now()
	for i := range ts {
		doc, venc, cents, docPag := chave(ts[i])
		nn := campo.ZeroEsquerda(campo.Digitos(ts[i].NossoNumero), 11)
		sacado := strings.TrimSpace(ts[i].Sacado)

		_, err := tx.Exec(insert, doc, venc, cents, docPag, sacado, nn, b.Agencia4(), b.Conta7(), b.Carteira2(), arquivo, now)
		switch {
		case err == nil:
			// registered
		case database.UniqueViolation(err):
			if !override {
				continue
			}
			if _, err := tx.Exec(update, nn, sacado, arquivo, now, doc, venc, cents, docPag); err != nil {
				tx.Rollback()
				return fmt.Errorf("registrar titulo %s: %v", doc, err)
			}
		default:
			tx.Rollback()
			return fmt.Errorf("registrar titulo %s: %v", doc, err)
		}
	}
	return tx.Commit()
}

func (r *sqlRepo) RegistrarRemessa(arquivo string, sequencia, qtdeTitulos int, valorTotal int64) error {
	query := `insert into remessas(arquivo, sequencia, qtde_titulos, valor_total, criado_em) values(?, ?, ?, ?, ?);`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(arquivo, sequencia, qtdeTitulos, valorTotal, time.Now())
	return err
}

func (r *sqlRepo) MarcarRetornoProcessado(arquivo string, ocorrencias int) error {
	query := `insert into retornos(arquivo, ocorrencias, processado_em) values(?, ?, ?);`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(arquivo, ocorrencias, time.Now())
	return err
}

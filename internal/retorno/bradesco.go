// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package retorno

import (
	"fmt"
	"strings"
	"time"

	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/remessa"
	"github.com/nasapay/cobranca/pkg/config"
)

// MontarMeta assembles the beneficiary data a Bradesco return needs,
// preferring the newest remittance sidecar in dir and falling back to
// the configured beneficiary field by field.
func MontarMeta(dir string, b config.Beneficiario, agora time.Time) remessa.Meta {
	meta, err := remessa.UltimaMeta(dir)
	if err != nil {
		meta = remessa.Meta{}
	}
	ou := func(v, padrao string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return padrao
	}
	meta.Agencia = campo.ZeroEsquerda(campo.Digitos(ou(meta.Agencia, b.Agencia)), 4)
	meta.Conta = campo.ZeroEsquerda(campo.Digitos(ou(meta.Conta, b.Conta)), 7)
	meta.DigitoConta = ou(meta.DigitoConta, ou(b.DigitoConta, "0"))[:1]
	meta.Carteira = campo.ZeroEsquerda(campo.Digitos(ou(meta.Carteira, b.Carteira)), 2)
	meta.CodigoCedente = ou(meta.CodigoCedente, b.CodigoCedente)
	meta.RazaoSocial = ou(meta.RazaoSocial, b.RazaoSocial)
	meta.DataGravacao = ou(meta.DataGravacao, campo.DataDDMMAA(agora))
	return meta
}

// EncodeBradesco400 re-encodes parsed occurrences as a Bradesco CNAB400
// return file (bank 237). sequencia numbers the generated file and is
// minted from the sequence registry by callers.
func EncodeBradesco400(itens []Ocorrencia, meta remessa.Meta, sequencia int) []string {
	linhas := []string{headerBradesco(meta, sequencia)}
	for i := range itens {
		linhas = append(linhas, detalheBradesco(itens[i], meta))
	}
	linhas = append(linhas, trailerBradesco(len(linhas)+1))
	return linhas
}

func headerBradesco(meta remessa.Meta, sequencia int) string {
	r := campo.NovoRegistro('0')
	r.Set(2, 9, "RETORNO")
	r.Set(27, 46, meta.CodigoCedente)
	r.Set(47, 76, strings.ToUpper(campo.Alfanumerico(meta.RazaoSocial)))
	r.Set(77, 79, "237")
	r.Set(80, 94, "BRADESCO")
	r.Set(95, 100, meta.DataGravacao)
	r.SetSequencial(sequencia)
	return r.String()
}

func detalheBradesco(it Ocorrencia, meta remessa.Meta) string {
	r := campo.NovoRegistro('1')
	r.Set(38, 49, fmt.Sprintf("%12s", truncar(it.Documento, 12)))
	r.Set(107, 108, meta.Carteira)
	if venc := campo.Digitos(it.Vencimento); len(venc) == 8 {
		r.Set(147, 152, venc[0:4]+venc[6:8])
	}
	r.SetNum(153, 165, fmt.Sprintf("%013d", it.ValorCentavos))
	r.Set(171, 174, meta.Agencia)
	r.Set(175, 182, fmt.Sprintf("%8s", meta.Conta+meta.DigitoConta))
	r.Set(319, 328, fmt.Sprintf("%10s", truncar(it.Motivos, 10)))
	return r.String()
}

func trailerBradesco(total int) string {
	r := campo.NovoRegistro('9')
	r.SetNum(395, 400, fmt.Sprintf("%06d", total))
	return r.String()
}

func truncar(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package remessa

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-kit/kit/log"
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	stdprom "github.com/prometheus/client_golang/prometheus"

	"github.com/nasapay/cobranca/internal/boleto"
	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/sequencia"
	"github.com/nasapay/cobranca/internal/titulo"
	"github.com/nasapay/cobranca/pkg/config"
)

var (
	remessasGeradas = kitprom.NewCounterFrom(stdprom.CounterOpts{
		Name: "remessas_geradas",
		Help: "Count of remittance files generated.",
	}, nil)
	titulosRejeitados = kitprom.NewCounterFrom(stdprom.CounterOpts{
		Name: "titulos_rejeitados",
		Help: "Count of títulos excluded from remittances for failing validation.",
	}, nil)
)

// Gerador runs one remittance generation end to end: our-number
// enrichment, record assembly, file output with sidecars and the
// post-write validation pass.
type Gerador struct {
	logger log.Logger
	cfg    *config.Config
	repo   sequencia.Repository
}

func NovoGerador(logger log.Logger, cfg *config.Config, repo sequencia.Repository) *Gerador {
	return &Gerador{logger: logger, cfg: cfg, repo: repo}
}

// Boleto pairs a título with its printable barcode values for a PDF
// renderer downstream.
type Boleto struct {
	Titulo         titulo.Titulo
	CodigoBarras   string
	LinhaDigitavel string
}

// Rejeitado reports one título excluded from the batch.
type Rejeitado struct {
	Titulo titulo.Titulo
	Motivo error
}

type Resultado struct {
	Arquivo    string
	Zip        string
	Sequencia  int
	Boletos    []Boleto
	Rejeitados []Rejeitado
}

// Gerar writes one remittance for the given títulos. Títulos that fail
// validation or encoding are excluded and reported in the Resultado;
// the batch only errors when nothing can be generated.
func (g *Gerador) Gerar(titulos []titulo.Titulo, agora time.Time) (*Resultado, error) {
	if len(titulos) == 0 {
		return nil, errors.New("remessa: nenhum título")
	}
	ben := g.cfg.Beneficiario

	var aceitos []titulo.Titulo
	var rejeitados []Rejeitado
	for _, t := range titulos {
		// validate before minting so rejected títulos don't burn
		// our-number sequence values
		prova := t
		if prova.NossoNumero == "" {
			prova.NossoNumero = "0"
		}
		if err := prova.Validate(); err != nil {
			rejeitados = append(rejeitados, Rejeitado{Titulo: t, Motivo: err})
			titulosRejeitados.Add(1)
			continue
		}

		if t.NossoNumero == "" {
			nn, err := g.repo.BuscarNossoNumero(t)
			if err != nil {
				return nil, fmt.Errorf("remessa: buscar nosso número: %v", err)
			}
			if nn == "" {
				if nn, err = g.repo.ProximoNossoNumero(ben); err != nil {
					return nil, fmt.Errorf("remessa: próximo nosso número: %v", err)
				}
			}
			t.NossoNumero = nn
		}
		aceitos = append(aceitos, t)
	}
	if len(aceitos) == 0 {
		return nil, fmt.Errorf("remessa: nenhum título válido (%d rejeitados)", len(rejeitados))
	}

	seq, err := g.repo.ProximaRemessa()
	if err != nil {
		return nil, fmt.Errorf("remessa: próxima sequência: %v", err)
	}

	arq := NovoArquivo(ben)
	if err := arq.Header(seq, agora); err != nil {
		return nil, err
	}
	var gravados []titulo.Titulo
	var valorTotal int64
	for _, t := range aceitos {
		if err := arq.Detalhe(t); err != nil {
			rejeitados = append(rejeitados, Rejeitado{Titulo: t, Motivo: err})
			titulosRejeitados.Add(1)
			continue
		}
		gravados = append(gravados, t)
		valorTotal += campo.Centavos(t.Valor)
	}
	if len(gravados) == 0 {
		return nil, fmt.Errorf("remessa: nenhum título válido (%d rejeitados)", len(rejeitados))
	}
	if err := arq.Trailer(); err != nil {
		return nil, err
	}
	linhas, err := arq.Linhas()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.cfg.Pastas.Saida, 0755); err != nil {
		return nil, err
	}
	nome := Nome(seq, agora)
	path := filepath.Join(g.cfg.Pastas.Saida, nome)
	if err := Escrever(path, linhas); err != nil {
		return nil, err
	}
	if err := Validar(path); err != nil {
		return nil, fmt.Errorf("remessa: arquivo gerado não validou: %v", err)
	}

	if err := EscreverMeta(path, Meta{
		Banco:         boleto.CodigoBanco,
		NomeBanco:     "BMP MONEY PLUS",
		DataGravacao:  campo.DataDDMMAA(agora),
		Agencia:       ben.Agencia4(),
		Conta:         ben.Conta7(),
		DigitoConta:   ben.DigitoConta,
		Carteira:      ben.Carteira2(),
		CodigoCedente: ben.Cedente7(),
		RazaoSocial:   ben.RazaoSocial,
		Sequencia:     seq,
		QtdeTitulos:   len(gravados),
		ValorTotal:    valorTotal,
	}); err != nil {
		return nil, err
	}
	zipPath, err := Zipar(path)
	if err != nil {
		return nil, err
	}

	if err := g.repo.RegistrarTitulos(gravados, ben, nome, false); err != nil {
		return nil, fmt.Errorf("remessa: registrar títulos: %v", err)
	}
	if err := g.repo.RegistrarRemessa(nome, seq, len(gravados), valorTotal); err != nil {
		return nil, fmt.Errorf("remessa: registrar remessa: %v", err)
	}

	boletos := make([]Boleto, 0, len(gravados))
	for _, t := range gravados {
		venc, err := campo.ParseData(t.Vencimento)
		if err != nil {
			return nil, fmt.Errorf("remessa: vencimento de %q: %v", t.Documento, err)
		}
		barras, err := boleto.CodigoBarras(ben.Agencia4(), ben.Carteira2(), ben.Conta7(), t.NossoNumero, venc, campo.Centavos(t.Valor))
		if err != nil {
			return nil, fmt.Errorf("remessa: código de barras de %q: %v", t.Documento, err)
		}
		linha, err := boleto.LinhaDigitavel(barras)
		if err != nil {
			return nil, err
		}
		boletos = append(boletos, Boleto{Titulo: t, CodigoBarras: barras, LinhaDigitavel: linha})
	}

	remessasGeradas.Add(1)
	g.logger.Log("remessa", fmt.Sprintf("gerado %s", nome),
		"sequencia", fmt.Sprintf("%07d", seq),
		"titulos", len(gravados),
		"rejeitados", len(rejeitados),
		"valor_total", valorTotal)

	return &Resultado{
		Arquivo:    path,
		Zip:        zipPath,
		Sequencia:  seq,
		Boletos:    boletos,
		Rejeitados: rejeitados,
	}, nil
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package retorno

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	"github.com/moov-io/base"
	stdprom "github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"golang.org/x/text/encoding/charmap"

	"github.com/nasapay/cobranca/internal/remessa"
	"github.com/nasapay/cobranca/internal/sequencia"
	"github.com/nasapay/cobranca/pkg/config"
	"github.com/nasapay/cobranca/pkg/database"
	"github.com/nasapay/cobranca/pkg/util"
)

var (
	retornosProcessados = kitprom.NewCounterFrom(stdprom.CounterOpts{
		Name: "retornos_processados",
		Help: "Count of return files parsed from the watched folder.",
	}, nil)
	ocorrenciasLidas = kitprom.NewCounterFrom(stdprom.CounterOpts{
		Name: "ocorrencias_lidas",
		Help: "Count of occurrence records read from return files.",
	}, []string{"codigo"})
)

// prefixoBradesco marks files this controller wrote itself so sweeps
// never re-ingest them.
const prefixoBradesco = "RET_BRADESCO_"

// Controller periodically sweeps the return folder, parses each new
// file and optionally re-encodes it in the Bradesco layout.
type Controller struct {
	logger log.Logger
	cfg    *config.Config
	repo   sequencia.Repository
	sched  cron.Schedule
}

func NewController(logger log.Logger, cfg *config.Config, repo sequencia.Repository) (*Controller, error) {
	if cfg.Pastas.Retorno == "" {
		return nil, nil // no folder to watch, controller disabled
	}
	if util.Yes(os.Getenv("RETORNO_SWEEP_DISABLED")) {
		logger.Log("retorno", "disabling return folder sweep via RETORNO_SWEEP_DISABLED")
		return nil, nil
	}
	intervalo := cfg.Retorno.Intervalo
	if intervalo == "" {
		intervalo = "@every 10m"
	}
	sched, err := cron.ParseStandard(intervalo)
	if err != nil {
		return nil, fmt.Errorf("retorno: intervalo %q: %v", intervalo, err)
	}
	logger.Log("retorno", fmt.Sprintf("starting return folder sweep: pasta=%s intervalo=%s", cfg.Pastas.Retorno, intervalo))
	return &Controller{
		logger: logger,
		cfg:    cfg,
		repo:   repo,
		sched:  sched,
	}, nil
}

// Start blocks sweeping the return folder on the configured schedule.
// A message on flush triggers an immediate sweep, which the admin
// endpoint uses and makes testing easier.
func (c *Controller) Start(ctx context.Context, flush chan struct{}) {
	for {
		timer := time.NewTimer(time.Until(c.sched.Next(time.Now())))

		select {
		case <-flush:
			timer.Stop()
			runID := base.ID()
			if _, err := c.Varrer(); err != nil {
				c.logger.Log("retorno", "ERROR: manual sweep", "runID", runID, "error", err)
			}

		case <-timer.C:
			runID := base.ID()
			if n, err := c.Varrer(); err != nil {
				c.logger.Log("retorno", "ERROR: periodic sweep", "runID", runID, "error", err)
			} else if n > 0 {
				c.logger.Log("retorno", fmt.Sprintf("%d arquivo(s) processado(s), aguardando próximo ciclo", n), "runID", runID)
			}

		case <-ctx.Done():
			timer.Stop()
			c.logger.Log("retorno", "shutting down due to context.Done()")
			return
		}
	}
}

// Varrer sweeps the folder once and returns how many files it parsed.
// Files already recorded in the registry are skipped.
func (c *Controller) Varrer() (int, error) {
	infos, err := ioutil.ReadDir(c.cfg.Pastas.Retorno)
	if err != nil {
		return 0, err
	}

	processados := 0
	for i := range infos {
		nome := infos[i].Name()
		if infos[i].IsDir() || !arquivoRetorno(nome) {
			continue
		}
		if err := c.Processar(filepath.Join(c.cfg.Pastas.Retorno, nome)); err != nil {
			if err == errJaProcessado {
				continue
			}
			c.logger.Log("retorno", fmt.Sprintf("ERROR: processando %s", nome), "error", err)
			continue
		}
		processados++
	}
	return processados, nil
}

var errJaProcessado = fmt.Errorf("retorno já processado")

// Processar parses one return file, records it in the registry and,
// when enabled, writes the Bradesco re-encoding next to it. Parsing
// the same filename twice reports errJaProcessado via the registry's
// unique constraint.
func (c *Controller) Processar(path string) error {
	nome := filepath.Base(path)

	res, err := LerArquivo(path)
	if err != nil {
		return err
	}
	if err := c.repo.MarcarRetornoProcessado(nome, len(res.Itens)); err != nil {
		if database.UniqueViolation(err) {
			return errJaProcessado
		}
		return err
	}

	for i := range res.Itens {
		ocorrenciasLidas.With("codigo", res.Itens[i].Codigo).Add(1)
	}
	for _, e := range res.Erros {
		c.logger.Log("retorno", fmt.Sprintf("registro ignorado em %s", nome), "erro", e.Error())
	}
	retornosProcessados.Add(1)
	c.logger.Log("retorno", fmt.Sprintf("%s: %d ocorrência(s)", nome, len(res.Itens)))

	if c.cfg.Retorno.Bradesco {
		out, err := c.ConverterBradesco(path, res.Itens)
		if err != nil {
			return fmt.Errorf("converter bradesco: %v", err)
		}
		c.logger.Log("retorno", fmt.Sprintf("bradesco gerado: %s", filepath.Base(out)))
	}

	if dir := c.cfg.Pastas.Processados; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := os.Rename(path, filepath.Join(dir, nome)); err != nil {
			return fmt.Errorf("mover para processados: %v", err)
		}
	}
	return nil
}

// ConverterBradesco writes the Bradesco 400 re-encoding of a parsed
// return file into the return folder and returns its path.
func (c *Controller) ConverterBradesco(path string, itens []Ocorrencia) (string, error) {
	seq, err := c.repo.ProximoRetornoBradesco()
	if err != nil {
		return "", err
	}

	meta := MontarMeta(c.cfg.Pastas.Saida, c.cfg.Beneficiario, time.Now())
	linhas := EncodeBradesco400(itens, meta, seq)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(filepath.Dir(path), prefixoBradesco+base+".ret")
	return out, remessa.Escrever(out, linhas)
}

// LerArquivo decodes a Latin-1 return file and parses its records.
func LerArquivo(path string) (*Resultado, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(charmap.ISO8859_1.NewDecoder().Reader(f))
}

// arquivoRetorno reports whether a filename looks like an inbound
// return file. Our own Bradesco re-encodings are excluded.
func arquivoRetorno(nome string) bool {
	if strings.HasPrefix(nome, prefixoBradesco) {
		return false
	}
	switch strings.ToLower(filepath.Ext(nome)) {
	case ".ret", ".txt":
		return true
	}
	return false
}

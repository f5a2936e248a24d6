// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/moov-io/base/admin"
	"github.com/moov-io/base/http/bind"

	"github.com/nasapay/cobranca"
	"github.com/nasapay/cobranca/internal/importacao"
	"github.com/nasapay/cobranca/internal/remessa"
	"github.com/nasapay/cobranca/internal/retorno"
	"github.com/nasapay/cobranca/internal/sequencia"
	"github.com/nasapay/cobranca/internal/titulo"
	"github.com/nasapay/cobranca/pkg/config"
	configadmin "github.com/nasapay/cobranca/pkg/config/admin"
	"github.com/nasapay/cobranca/pkg/database"
	"github.com/nasapay/cobranca/pkg/util"
)

var (
	adminAddr      = flag.String("admin.addr", bind.Admin("cobranca"), "Admin HTTP listen address")
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
	flagLogFormat  = flag.String("log.format", "", "Format for log lines (Options: json, plain)")

	flagGerar           = flag.Bool("gerar", false, "Generate one remittance from the files passed as arguments and exit")
	flagValidar         = flag.String("validar", "", "Validate a generated .REM file and exit")
	flagRetorno         = flag.String("retorno", "", "Parse a return file, print its occurrences and exit")
	flagRetornoBradesco = flag.String("retorno.bradesco", "", "Re-encode a return file in the Bradesco 400 layout and exit")
	flagWatch           = flag.Bool("watch", false, "Keep running and sweep the return folder on the configured interval")
)

func main() {
	flag.Parse()

	cfg, err := config.FromFile(util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile))
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	cfg.OverrideLogFormat(*flagLogFormat)
	logger := cfg.Logger

	// one-shot modes that need no database
	if *flagValidar != "" {
		if err := remessa.Validar(*flagValidar); err != nil {
			logger.Log("validar", err)
			os.Exit(1)
		}
		logger.Log("validar", fmt.Sprintf("%s válido", filepath.Base(*flagValidar)))
		return
	}
	if *flagRetorno != "" {
		if err := imprimirRetorno(*flagRetorno); err != nil {
			logger.Log("retorno", err)
			os.Exit(1)
		}
		return
	}

	logger.Log("startup", fmt.Sprintf("Starting cobranca version %s", cobranca.Version))

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	db, err := database.New(ctx, logger, cfg.Database.SQLite.GetPath())
	if err != nil {
		panic(fmt.Sprintf("error creating database: %v", err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Log("exit", err)
		}
	}()
	repo := sequencia.NewRepo(db)

	if *flagGerar {
		if err := gerarRemessa(cfg, repo, flag.Args()); err != nil {
			logger.Log("gerar", err)
			os.Exit(1)
		}
		return
	}
	if *flagRetornoBradesco != "" {
		if err := converterBradesco(cfg, repo, *flagRetornoBradesco); err != nil {
			logger.Log("retorno.bradesco", err)
			os.Exit(1)
		}
		return
	}
	if !*flagWatch {
		flag.Usage()
		os.Exit(2)
	}

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Spin up admin HTTP server and optionally override -admin.addr
	if cfg.Admin.BindAddress != "" {
		*adminAddr = cfg.Admin.BindAddress
	}
	if v := os.Getenv("HTTP_ADMIN_BIND_ADDRESS"); v != "" {
		*adminAddr = v
	}
	adminServer := admin.NewServer(*adminAddr)
	adminServer.AddVersionHandler(cobranca.Version) // Setup 'GET /version'
	configadmin.RegisterRoutes(adminServer, cfg)
	go func() {
		logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	controller, err := retorno.NewController(logger, cfg, repo)
	if err != nil {
		panic(fmt.Sprintf("ERROR: creating return folder controller: %v", err))
	}
	if controller == nil {
		panic("no return folder configured, nothing to watch")
	}

	// buffered channel so the admin endpoint never blocks on a sweep
	flush := make(chan struct{}, 1)
	adminServer.AddHandler("/retorno/varrer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		select {
		case flush <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
	})
	go controller.Start(ctx, flush)

	if err := <-errs; err != nil {
		logger.Log("exit", err)
	}
}

// gerarRemessa extracts títulos from each input file and writes one
// remittance holding all of them.
func gerarRemessa(cfg *config.Config, repo sequencia.Repository, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("nenhum arquivo de entrada")
	}

	imp := importacao.NovoImportador(cfg.Logger, repo)
	var titulos []titulo.Titulo
	for i := range paths {
		res, err := imp.ExtrairArquivo(paths[i])
		if err != nil {
			return err
		}
		titulos = append(titulos, res.Titulos...)
	}

	gerador := remessa.NovoGerador(cfg.Logger, cfg, repo)
	res, err := gerador.Gerar(titulos, time.Now())
	if err != nil {
		return err
	}
	for i := range res.Rejeitados {
		fmt.Printf("REJEITADO  %-30s  %v\n", res.Rejeitados[i].Titulo.Sacado, res.Rejeitados[i].Motivo)
	}
	for i := range res.Boletos {
		b := res.Boletos[i]
		fmt.Printf("%-30s  %s  %s\n", b.Titulo.Sacado, b.Titulo.Valor, b.LinhaDigitavel)
	}
	fmt.Printf("remessa %s (%d título(s))\nzip %s\n", res.Arquivo, len(res.Boletos), res.Zip)
	return nil
}

func imprimirRetorno(path string) error {
	res, err := retorno.LerArquivo(path)
	if err != nil {
		return err
	}
	for _, e := range res.Erros {
		fmt.Fprintf(os.Stderr, "registro ignorado: %v\n", e)
	}
	if len(res.Itens) == 0 {
		return fmt.Errorf("nenhum registro de transação (tipo 1) em %s", filepath.Base(path))
	}
	for i := range res.Itens {
		it := res.Itens[i]
		fmt.Printf("%-20s  %-10s  %10s  %12s  %s\n", it.Controle, it.Documento, it.Vencimento, it.Valor, it.Status)
	}
	return nil
}

func converterBradesco(cfg *config.Config, repo sequencia.Repository, path string) error {
	res, err := retorno.LerArquivo(path)
	if err != nil {
		return err
	}
	for _, e := range res.Erros {
		fmt.Fprintf(os.Stderr, "registro ignorado: %v\n", e)
	}
	if len(res.Itens) == 0 {
		return fmt.Errorf("nenhum registro de transação (tipo 1) em %s", filepath.Base(path))
	}

	seq, err := repo.ProximoRetornoBradesco()
	if err != nil {
		return err
	}
	meta := retorno.MontarMeta(cfg.Pastas.Saida, cfg.Beneficiario, time.Now())
	linhas := retorno.EncodeBradesco400(res.Itens, meta, seq)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(filepath.Dir(path), "RET_BRADESCO_"+base+".ret")
	if err := remessa.Escrever(out, linhas); err != nil {
		return err
	}
	fmt.Printf("registros convertidos: %d\narquivo gerado: %s\n", len(res.Itens), out)
	return nil
}

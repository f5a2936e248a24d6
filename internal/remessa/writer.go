// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package remessa

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// Escrever writes the records as Latin-1 text with CRLF line endings.
// The bank rejects UTF-8; free text must already be accent-folded.
func Escrever(path string, linhas []string) error {
	var b strings.Builder
	for _, ln := range linhas {
		b.WriteString(ln)
		b.WriteString("\r\n")
	}
	bs, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(b.String()))
	if err != nil {
		return fmt.Errorf("remessa: codificar latin-1: %v", err)
	}
	return ioutil.WriteFile(path, bs, 0644)
}

// Ler reads a remittance file back into its records, decoding Latin-1
// and dropping line terminators.
func Ler(path string) ([]string, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(bs)
	if err != nil {
		return nil, fmt.Errorf("remessa: decodificar latin-1: %v", err)
	}
	var linhas []string
	for _, ln := range strings.Split(string(decoded), "\n") {
		ln = strings.TrimRight(ln, "\r")
		if ln != "" {
			linhas = append(linhas, ln)
		}
	}
	return linhas, nil
}

// Meta is the sidecar written next to each remittance with the fields a
// return-file assembler needs.
type Meta struct {
	Banco         string `json:"banco"`
	NomeBanco     string `json:"nome_banco"`
	DataGravacao  string `json:"data_gravacao"`
	Agencia       string `json:"agencia"`
	Conta         string `json:"conta"`
	DigitoConta   string `json:"dv_conta"`
	Carteira      string `json:"carteira"`
	CodigoCedente string `json:"codigo_cedente"`
	RazaoSocial   string `json:"razao_social"`
	Sequencia     int    `json:"sequencia"`
	QtdeTitulos   int    `json:"qtde_titulos"`
	ValorTotal    int64  `json:"valor_total_centavos"`
}

func EscreverMeta(remPath string, meta Meta) error {
	bs, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(remPath+".meta.json", bs, 0644)
}

func LerMeta(remPath string) (Meta, error) {
	var meta Meta
	bs, err := ioutil.ReadFile(remPath + ".meta.json")
	if err != nil {
		return meta, err
	}
	return meta, json.Unmarshal(bs, &meta)
}

// UltimaMeta returns the sidecar of the most recently written
// remittance in dir. os.ErrNotExist when the folder holds none.
func UltimaMeta(dir string) (Meta, error) {
	var meta Meta

	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return meta, err
	}
	var caminho string
	var quando time.Time
	for i := range infos {
		if infos[i].IsDir() || !strings.HasSuffix(strings.ToLower(infos[i].Name()), ".meta.json") {
			continue
		}
		if caminho == "" || infos[i].ModTime().After(quando) {
			caminho = filepath.Join(dir, infos[i].Name())
			quando = infos[i].ModTime()
		}
	}
	if caminho == "" {
		return meta, os.ErrNotExist
	}
	bs, err := ioutil.ReadFile(caminho)
	if err != nil {
		return meta, err
	}
	return meta, json.Unmarshal(bs, &meta)
}

// Zipar writes a sibling .zip holding just the remittance file, the
// shape the bank's portal accepts for upload.
func Zipar(remPath string) (string, error) {
	zipPath := strings.TrimSuffix(remPath, filepath.Ext(remPath)) + ".zip"

	out, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	w, err := zw.Create(filepath.Base(remPath))
	if err != nil {
		return "", err
	}
	bs, err := ioutil.ReadFile(remPath)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(bs); err != nil {
		return "", err
	}
	return zipPath, zw.Close()
}

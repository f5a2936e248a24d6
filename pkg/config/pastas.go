// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Pastas names the local folders the batch runs read and write.
type Pastas struct {
	// Saida receives generated .REM files and their sidecars.
	Saida string `yaml:"saida"`
	// Retorno is watched for inbound .RET/.TXT return files.
	Retorno string `yaml:"retorno"`
	// Processados receives return files after parsing. Empty disables
	// the move; the registry still keeps sweeps from re-parsing them.
	Processados string `yaml:"processados"`
}

func (p Pastas) Validate() error {
	if p.Saida == "" {
		return errors.New("pasta de saída vazia")
	}
	return nil
}

// Retorno configures the background sweep of the return folder.
type Retorno struct {
	// Intervalo is a cron spec, "@every 10m" style or 5-field.
	Intervalo string `yaml:"intervalo"`
	// Bradesco enables re-encoding parsed returns into the Bradesco
	// 400-column layout next to the source file.
	Bradesco bool `yaml:"bradesco"`
}

func (r Retorno) Validate() error {
	if r.Intervalo == "" {
		return nil
	}
	if _, err := cron.ParseStandard(r.Intervalo); err != nil {
		return fmt.Errorf("intervalo %q: %v", r.Intervalo, err)
	}
	return nil
}

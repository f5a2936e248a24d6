// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package remessa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reNomeRemessa = regexp.MustCompile(`^CB(\d{4})(\d{7})\.REM$`)

// Nome derives the remittance filename: CB + DDMM + 7-digit sequence.
func Nome(sequencia int, geracao time.Time) string {
	return fmt.Sprintf("CB%s%07d.REM", geracao.Format("0201"), sequencia)
}

// SequenciaDoNome extracts the 7-digit sequence from a remittance
// filename.
func SequenciaDoNome(nome string) (int, error) {
	m := reNomeRemessa.FindStringSubmatch(strings.ToUpper(nome))
	if m == nil {
		return 0, fmt.Errorf("remessa: nome %q fora do padrão CBddmmNNNNNNN.REM", nome)
	}
	return strconv.Atoi(m[2])
}

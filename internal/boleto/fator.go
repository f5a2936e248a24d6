// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package boleto

import (
	"fmt"
	"time"
)

var (
	// epocaAntiga is the original FEBRABAN due-date factor epoch.
	epocaAntiga = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)
	// epocaNova restarts the counter at 1000: the 4-digit field ran out
	// of room and the convention rolled over on 2025-02-22.
	epocaNova = time.Date(2025, time.February, 22, 0, 0, 0, 0, time.UTC)
)

// FatorVencimento encodes a due date as the 4-digit "fator de
// vencimento". Dates on or after 2025-02-22 use the new epoch
// (1000 + days since the cutover); earlier dates count days from
// 1997-10-07. Day differences are calendar-day counts, never rounded.
func FatorVencimento(vencimento time.Time) (string, error) {
	d := time.Date(vencimento.Year(), vencimento.Month(), vencimento.Day(), 0, 0, 0, 0, time.UTC)

	var fator int
	if !d.Before(epocaNova) {
		fator = 1000 + dias(epocaNova, d)
	} else {
		fator = dias(epocaAntiga, d)
	}
	if fator < 0 || fator > 9999 {
		return "", fmt.Errorf("boleto: fator de vencimento %d fora do campo de 4 dígitos para %s", fator, d.Format("02/01/2006"))
	}
	return fmt.Sprintf("%04d", fator), nil
}

func dias(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

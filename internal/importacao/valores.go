// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package importacao

import (
	"fmt"
	"strconv"
	"strings"
)

// centavosCampo reads a zero-filled numeric amount field already
// denominated in cents.
func centavosCampo(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// valorBR renders cents as the comma-decimal string the rest of the
// pipeline expects ("1500,00").
func valorBR(cents int64) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}

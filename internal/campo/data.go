// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package campo

import (
	"fmt"
	"strings"
	"time"
)

var formatosData = []string{"02/01/2006", "2006-01-02"}

// ParseData parses the date formats accepted across inbound files:
// "DD/MM/YYYY", "YYYY-MM-DD" and a raw 8-digit "DDMMYYYY" string.
func ParseData(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}
	for _, layout := range formatosData {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if d := Digitos(s); len(d) == 8 {
		if t, err := time.Parse("02012006", d); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida %q", s)
}

// DDMMAA reformats an accepted date string into the 6-digit wire form
// used by the 400-column layouts ("150325" for 15/03/2025).
func DDMMAA(s string) (string, error) {
	t, err := ParseData(s)
	if err != nil {
		return "", err
	}
	return t.Format("020106"), nil
}

// DataDDMMAA renders a time in the 6-digit wire form.
func DataDDMMAA(t time.Time) string {
	return t.Format("020106")
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package boleto

import (
	"strings"
	"testing"
	"time"
)

func TestMod10(t *testing.T) {
	cases := []struct {
		num  string
		want byte
	}{
		{"274912341", '6'},
		{"7000000123", '3'},
		{"4500567890", '4'},
		{"0", '0'},
	}
	for _, c := range cases {
		got, err := Mod10(c.num)
		if err != nil {
			t.Fatalf("Mod10(%q): %v", c.num, err)
		}
		if got != c.want {
			t.Errorf("Mod10(%q)=%c, want %c", c.num, got, c.want)
		}
	}

	if _, err := Mod10("12a4"); err == nil {
		t.Error("expected error on non-digit input")
	}
}

func TestDVNossoNumero(t *testing.T) {
	dv, err := DVNossoNumero("17", "00000012345")
	if err != nil {
		t.Fatal(err)
	}
	if dv != '9' {
		t.Errorf("got %c, want 9", dv)
	}

	// unpadded inputs normalize to the same sequence
	dv, err = DVNossoNumero("17", "12345")
	if err != nil {
		t.Fatal(err)
	}
	if dv != '9' {
		t.Errorf("unpadded: got %c, want 9", dv)
	}

	// remainder 0 maps to '0', never to a weight artifact
	dv, err = DVNossoNumero("00", "00000000000")
	if err != nil {
		t.Fatal(err)
	}
	if dv != '0' {
		t.Errorf("all zeros: got %c, want 0", dv)
	}
}

func TestDVCodigoBarras__forcadoUm(t *testing.T) {
	// 43 zeros: remainder 0 would yield 11, which the convention
	// collapses to 1
	dv, err := dvCodigoBarras(strings.Repeat("0", 43))
	if err != nil {
		t.Fatal(err)
	}
	if dv != '1' {
		t.Errorf("got %c, want 1", dv)
	}
}

func TestFatorVencimento(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2000-07-03", "1000"}, // 1000 days after the 1997 epoch
		{"2025-02-21", "9999"}, // last day of the old range
		{"2025-02-22", "1000"}, // cutover restarts at 1000
		{"2025-02-23", "1001"},
		{"2026-08-29", "1553"},
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatal(err)
		}
		got, err := FatorVencimento(d)
		if err != nil {
			t.Fatalf("FatorVencimento(%s): %v", c.date, err)
		}
		if got != c.want {
			t.Errorf("FatorVencimento(%s)=%s, want %s", c.date, got, c.want)
		}
	}

	before, _ := time.Parse("2006-01-02", "1997-01-01")
	if _, err := FatorVencimento(before); err == nil {
		t.Error("expected error for a date before the 1997 epoch")
	}
}

func TestCampoLivre(t *testing.T) {
	got := CampoLivre("1234", "17", "00000012345", "0056789")
	want := "1234170000001234500567890"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if len(got) != 25 {
		t.Errorf("campo livre com %d dígitos", len(got))
	}

	// short inputs are zero padded to their field widths
	if got := CampoLivre("12", "7", "12345", "56789"); got != "0012070000000123450056789" {
		t.Errorf("padded: got %s", got)
	}
}

func TestCodigoBarras(t *testing.T) {
	venc, _ := time.Parse("2006-01-02", "2025-02-22")
	got, err := CodigoBarras("1234", "17", "0056789", "00000012345", venc, 150000)
	if err != nil {
		t.Fatal(err)
	}
	want := "27499100000001500001234170000001234500567890"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if len(got) != 44 {
		t.Errorf("código de barras com %d dígitos", len(got))
	}

	if _, err := CodigoBarras("1234", "17", "0056789", "00000012345", venc, -1); err == nil {
		t.Error("expected error on negative amount")
	}
}

func TestLinhaDigitavel(t *testing.T) {
	linha, err := LinhaDigitavel("27499100000001500001234170000001234500567890")
	if err != nil {
		t.Fatal(err)
	}
	want := "27491.23416 70000.001233 45005.678904 9 10000000150000"
	if linha != want {
		t.Errorf("got  %s\nwant %s", linha, want)
	}

	if _, err := LinhaDigitavel("123"); err == nil {
		t.Error("expected error on short barcode")
	}
}

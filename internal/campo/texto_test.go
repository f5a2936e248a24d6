// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package campo

import "testing"

func TestAlfanumerico(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"José da Silva", "Jose da Silva"},
		{"AÇOUGUE SÃO JOÃO", "ACOUGUE SAO JOAO"},
		{"R. Düsseldorf, 10 - Céu Azul", "R. Dusseldorf  10 - Ceu Azul"},
		{"A&B IND./COM.", "A&B IND./COM."},
		{"linha\tcom\ttabs", "linha com tabs"},
	}
	for _, tc := range cases {
		if got := Alfanumerico(tc.in); got != tc.want {
			t.Errorf("Alfanumerico(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDocSemDV(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"0000003672-3", "0000003672"},
		{"0000003672/3", "0000003672"},
		{"0000003672.3", "0000003672"},
		{"0000003672", "0000003672"},
		{"12.345-6", "123456"}, // separator not in final position: just digits
		{" 98765 - 1 ", "98765"},
	}
	for _, tc := range cases {
		if got := DocSemDV(tc.in); got != tc.want {
			t.Errorf("DocSemDV(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDocPagador14(t *testing.T) {
	if got := DocPagador14("123.456.789-01"); got != "00012345678901" {
		t.Errorf("got %q", got)
	}
	if got := DocPagador14("12.345.678/0001-95"); got != "12345678000195" {
		t.Errorf("got %q", got)
	}
	if got := DocPagador14("9912345678000195"); got != "12345678000195" {
		t.Errorf("got %q", got)
	}
}

// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package campo holds the fixed-width field codec shared by every CNAB
// style layout in this repository: a 400-column record buffer with
// 1-based inclusive column addressing, plus the monetary, date and text
// formatters that feed it.
package campo

import (
	"fmt"
	"strings"
)

// TamanhoRegistro is the line width of every record written or read by
// this repository (CNAB 400).
const TamanhoRegistro = 400

// Registro is a mutable 400-column record buffer. Column 1 carries the
// record type ('0' header, '1' detail, '9' trailer). All writes use
// 1-based inclusive column ranges, matching the bank layout manuals.
//
// Writing outside the record is a programming defect, not an input
// error, so Set and SetNum panic instead of returning an error.
type Registro struct {
	buf []byte
}

// NovoRegistro returns a blank record with tipo at column 1.
func NovoRegistro(tipo byte) *Registro {
	r := &Registro{buf: make([]byte, TamanhoRegistro)}
	for i := range r.buf {
		r.buf[i] = ' '
	}
	r.buf[0] = tipo
	return r
}

func (r *Registro) checkRange(start, end int) {
	if start < 1 || end > TamanhoRegistro || start > end {
		panic(fmt.Sprintf("campo: intervalo %d-%d fora do registro de %d colunas", start, end, TamanhoRegistro))
	}
}

// Set writes v into columns [start..end], left justified and blank
// padded (alphanumeric picture). Values longer than the range are
// truncated on the right.
func (r *Registro) Set(start, end int, v string) {
	r.checkRange(start, end)
	width := end - start + 1
	if len(v) > width {
		v = v[:width]
	}
	copy(r.buf[start-1:end], v)
	for i := start - 1 + len(v); i < end; i++ {
		r.buf[i] = ' '
	}
}

// SetNum writes v into columns [start..end] as a numeric picture:
// whitespace is stripped, the value is truncated to the field width and
// zero filled on the left.
func (r *Registro) SetNum(start, end int, v string) {
	r.checkRange(start, end)
	width := end - start + 1
	v = strings.Join(strings.Fields(v), "")
	if len(v) > width {
		v = v[:width]
	}
	for i := start - 1; i < end-len(v); i++ {
		r.buf[i] = '0'
	}
	copy(r.buf[end-len(v):end], v)
}

// SetSequencial writes the record sequence number at columns 395-400.
func (r *Registro) SetSequencial(n int) {
	r.SetNum(395, 400, fmt.Sprintf("%06d", n))
}

// String serializes the record. The length invariant is re-checked so a
// corrupted buffer is reported instead of silently truncated.
func (r *Registro) String() string {
	if len(r.buf) != TamanhoRegistro {
		panic(fmt.Sprintf("campo: registro com %d colunas, esperado %d", len(r.buf), TamanhoRegistro))
	}
	return string(r.buf)
}

// Slice reads columns [start..end] (1-based, inclusive) from a record
// line. It's the read-side mirror of Set/SetNum.
func Slice(line string, start, end int) string {
	if start < 1 || end > len(line) || start > end {
		return ""
	}
	return line[start-1 : end]
}

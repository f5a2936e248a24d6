// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package importacao

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/nasapay/cobranca/internal/campo"
	"github.com/nasapay/cobranca/internal/titulo"
)

// NamespaceNFe is the namespace of electronic invoice documents.
const NamespaceNFe = "http://www.portalfiscal.inf.br/nfe"

type nfeInf struct {
	Ide struct {
		NNF   string `xml:"nNF"`
		DhEmi string `xml:"dhEmi"`
	} `xml:"ide"`
	Dest struct {
		XNome string `xml:"xNome"`
		CNPJ  string `xml:"CNPJ"`
		CPF   string `xml:"CPF"`
		Ender struct {
			XLgr    string `xml:"xLgr"`
			Nro     string `xml:"nro"`
			XBairro string `xml:"xBairro"`
			XMun    string `xml:"xMun"`
			UF      string `xml:"UF"`
			CEP     string `xml:"CEP"`
			Fone    string `xml:"fone"`
		} `xml:"enderDest"`
	} `xml:"dest"`
	Cobr struct {
		Dups []struct {
			NDup  string `xml:"nDup"`
			DVenc string `xml:"dVenc"`
			VDup  string `xml:"vDup"`
		} `xml:"dup"`
	} `xml:"cobr"`
}

// documents arrive either as a bare <NFe> or wrapped in <nfeProc>
type nfeProc struct {
	XMLName xml.Name
	NFe     struct {
		Inf nfeInf `xml:"infNFe"`
	} `xml:"NFe"`
	Inf nfeInf `xml:"infNFe"`
}

// NFe extracts one título per duplicata (installment) of an electronic
// invoice. Payer data comes from the dest/enderDest elements and is
// shared by every installment.
func NFe(r io.Reader) (*Resultado, error) {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc nfeProc
	if err := xml.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("xml inválido: %v", err)
	}
	if doc.XMLName.Space != NamespaceNFe {
		return nil, fmt.Errorf("namespace %q, esperado %q", doc.XMLName.Space, NamespaceNFe)
	}
	inf := doc.Inf
	if len(inf.Cobr.Dups) == 0 && inf.Ide.NNF == "" {
		inf = doc.NFe.Inf
	}
	if len(inf.Cobr.Dups) == 0 {
		return nil, fmt.Errorf("nota sem duplicatas (cobr/dup)")
	}

	dest := inf.Dest
	docPagador := dest.CNPJ
	if docPagador == "" {
		docPagador = dest.CPF
	}
	endereco := strings.Trim(fmt.Sprintf("%s, %s - %s", dest.Ender.XLgr, dest.Ender.Nro, dest.Ender.XBairro), " ,-")
	emissao := dataISO(inf.Ide.DhEmi)

	res := &Resultado{}
	for _, dup := range inf.Cobr.Dups {
		documento := inf.Ide.NNF
		if p := strings.TrimSpace(dup.NDup); p != "" {
			documento += "-" + p
		}
		res.Titulos = append(res.Titulos, titulo.Titulo{
			Origem:          "xml",
			Sacado:          strings.TrimSpace(dest.XNome),
			SacadoDocumento: campo.DocPagador14(docPagador),
			SacadoEndereco:  endereco,
			SacadoCidade:    strings.TrimSpace(dest.Ender.XMun),
			SacadoUF:        strings.TrimSpace(dest.Ender.UF),
			SacadoCEP:       formatarCEP(dest.Ender.CEP),
			SacadoFone:      formatarFone(dest.Ender.Fone),
			Documento:       campo.DocSemDV(documento),
			Vencimento:      dataISO(dup.DVenc),
			Emissao:         emissao,
			Valor:           strings.TrimSpace(dup.VDup),
		})
	}
	return res, nil
}

// dataISO reformats YYYY-MM-DD (or the date part of a dhEmi timestamp)
// as DD/MM/YYYY, passing unparseable input through.
func dataISO(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

func formatarCEP(c string) string {
	d := campo.Digitos(c)
	if len(d) == 8 {
		return d[:5] + "-" + d[5:]
	}
	return strings.TrimSpace(c)
}

func formatarFone(f string) string {
	d := campo.Digitos(f)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	}
	return strings.TrimSpace(f)
}

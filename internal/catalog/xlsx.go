package catalog

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadXLSX reads a catalog from an Excel workbook. An empty sheetName selects the
// first sheet. The first row of the sheet is the header.
func LoadXLSX(file, sheetName string) (*Table, *LoadReport, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer zr.Close()

	target, err := resolveSheet(&zr.Reader, sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
	}
	var sst sharedStrings
	if err := unmarshalZipXML(&zr.Reader, "xl/sharedStrings.xml", &sst); err != nil {
		return nil, nil, fmt.Errorf("read shared strings: %w", err)
	}
	var ws worksheet
	if err := unmarshalZipXML(&zr.Reader, target, &ws); err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}

	name := filepath.Base(file)
	if len(ws.Rows) == 0 {
		return NewTable(name, nil), &LoadReport{Name: name}, nil
	}
	strs := sst.values()
	b := newBuilder(name, ws.Rows[0].values(strs))
	for _, row := range ws.Rows[1:] {
		b.add(row.values(strs))
	}
	return b.table(), b.rep, nil
}

type sharedStrings struct {
	Items []struct {
		Text string `xml:"t"`
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

func (s sharedStrings) values() []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		if it.Text != "" || len(it.Runs) == 0 {
			out[i] = it.Text
			continue
		}
		var sb strings.Builder
		for _, r := range it.Runs {
			sb.WriteString(r.Text)
		}
		out[i] = sb.String()
	}
	return out
}

type worksheet struct {
	Rows []sheetRow `xml:"sheetData>row"`
}

type sheetRow struct {
	Cells []struct {
		Ref    string `xml:"r,attr"`
		Type   string `xml:"t,attr"`
		Value  string `xml:"v"`
		Inline struct {
			Text string `xml:"t"`
		} `xml:"is"`
	} `xml:"c"`
}

// values lays the row's cells out by column letter so sparse rows keep their positions.
func (r sheetRow) values(shared []string) []string {
	var out []string
	for i, c := range r.Cells {
		col := i
		if c.Ref != "" {
			col = columnIndex(c.Ref)
		}
		for len(out) <= col {
			out = append(out, "")
		}
		switch c.Type {
		case "s":
			if n, err := strconv.Atoi(c.Value); err == nil && n >= 0 && n < len(shared) {
				out[col] = shared[n]
			}
		case "inlineStr":
			out[col] = c.Inline.Text
		default:
			out[col] = c.Value
		}
	}
	return out
}

// columnIndex maps a cell reference like "C12" to a zero-based column.
func columnIndex(ref string) int {
	idx := 0
	for _, ch := range strings.ToUpper(ref) {
		if ch < 'A' || ch > 'Z' {
			break
		}
		idx = idx*26 + int(ch-'A'+1)
	}
	return idx - 1
}

type workbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type relationships struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func resolveSheet(zr *zip.Reader, sheetName string) (string, error) {
	var wb workbook
	var rels relationships
	if err := unmarshalZipXML(zr, "xl/workbook.xml", &wb); err != nil {
		return "", err
	}
	if err := unmarshalZipXML(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return "", err
	}
	if len(wb.Sheets) == 0 {
		if sheetName != "" {
			return "", fmt.Errorf("sheet %q not found", sheetName)
		}
		return "xl/worksheets/sheet1.xml", nil
	}
	rid := wb.Sheets[0].RID
	if sheetName != "" {
		rid = ""
		var names []string
		for _, s := range wb.Sheets {
			names = append(names, s.Name)
			if strings.EqualFold(s.Name, sheetName) {
				rid = s.RID
			}
		}
		if rid == "" {
			return "", fmt.Errorf("sheet %q not found; available sheets: %s", sheetName, strings.Join(names, ", "))
		}
	}
	for _, r := range rels.Items {
		if r.ID == rid {
			target := strings.TrimPrefix(r.Target, "/")
			if !strings.HasPrefix(target, "xl/") {
				target = path.Join("xl", target)
			}
			return target, nil
		}
	}
	return "xl/worksheets/sheet1.xml", nil
}

// unmarshalZipXML decodes a workbook part; a missing part leaves v untouched.
func unmarshalZipXML(zr *zip.Reader, name string, v any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		return xml.Unmarshal(data, v)
	}
	return nil
}

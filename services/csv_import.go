package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"backend/models"
	"backend/repository"
)

// Import target types.
const (
	ImportTypeTask  = "task"
	ImportTypeVisit = "visit"
)

// ImportPayload holds the rows synthesized from one uploaded CSV, already
// classified as visits or tasks.
type ImportPayload struct {
	Type   string
	Tasks  []models.Task
	Visits []models.Visit
}

// Count returns the number of synthesized rows.
func (p *ImportPayload) Count() int {
	if p.Type == ImportTypeVisit {
		return len(p.Visits)
	}
	return len(p.Tasks)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeHeader lower-cases a header cell and strips diacritics, so
// "Situação", "SITUACAO" and "situacao " all become "situacao".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// detectDelimiter picks the field separator from the header line. Any
// semicolon in the header wins, even inside quotes.
func detectDelimiter(header string) rune {
	if strings.ContainsRune(header, ';') {
		return ';'
	}
	return ','
}

// splitRow splits one data line. Comma-delimited files honor double-quoted
// fields that may contain commas; semicolon-delimited files split naively,
// a documented limitation of the format.
func splitRow(line string, delim rune) []string {
	if delim == ';' {
		return strings.Split(line, ";")
	}
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// findColumn locates a logical field by substring match over normalized
// headers: "situacao atual" still matches "situacao". Returns -1 when no
// header contains the key.
func findColumn(headers []string, key string) int {
	for i, h := range headers {
		if strings.Contains(h, key) {
			return i
		}
	}
	return -1
}

// cell reads column idx from a row, trimming spaces and surrounding quotes,
// falling back to def when the column is missing or empty.
func cell(row []string, idx int, def string) string {
	if idx < 0 || idx >= len(row) {
		return def
	}
	v := strings.Trim(strings.TrimSpace(row[idx]), `"`)
	if v == "" {
		return def
	}
	return v
}

// ParseImport turns raw CSV text into synthesized entities. When target is
// empty the file is classified by its headers: any header containing
// "unidade" means a visit import, anything else a task import. Only those
// two types are importable through this path.
func ParseImport(content, target string) (*ImportPayload, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("file empty: need a header row and at least one data row")
	}

	delim := detectDelimiter(lines[0])
	rawHeaders := splitRow(lines[0], delim)
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = normalizeHeader(strings.Trim(strings.TrimSpace(h), `"`))
	}

	importType := target
	if importType == "" {
		importType = ImportTypeTask
		if findColumn(headers, "unidade") >= 0 {
			importType = ImportTypeVisit
		}
	}
	if importType != ImportTypeTask && importType != ImportTypeVisit {
		return nil, fmt.Errorf("unknown import target: %q", target)
	}

	payload := &ImportPayload{Type: importType}
	for _, line := range lines[1:] {
		row := splitRow(line, delim)
		if len(row) < 2 {
			// Blank or malformed line, dropped without an itemized error.
			continue
		}
		if importType == ImportTypeVisit {
			payload.Visits = append(payload.Visits, synthesizeVisit(headers, row))
		} else {
			payload.Tasks = append(payload.Tasks, synthesizeTask(headers, row))
		}
	}
	if payload.Count() == 0 {
		return nil, fmt.Errorf("no importable rows found")
	}
	return payload, nil
}

func synthesizeVisit(headers, row []string) models.Visit {
	return models.Visit{
		ID:           repository.NewID("visit"),
		Tower:        cell(row, findColumn(headers, "torre"), "T1"),
		Unit:         cell(row, findColumn(headers, "unidade"), ""),
		Situation:    cell(row, findColumn(headers, "situacao"), "Importado"),
		Time:         cell(row, findColumn(headers, "hora"), ""),
		Collaborator: cell(row, findColumn(headers, "colaborador"), ""),
		Status:       cell(row, findColumn(headers, "status"), models.VisitStatusPending),
		ReturnDate:   cell(row, findColumn(headers, "retorno"), models.NoReturnDate),
	}
}

// synthesizeTask builds a full task from whatever columns the file offers.
// Lookup references are fresh ids rather than matches against the existing
// catalogs, so imported tasks point at catalog entries that do not exist
// and render as raw ids until curated.
func synthesizeTask(headers, row []string) models.Task {
	return models.Task{
		ID:            repository.NewID("task"),
		Title:         cell(row, findColumn(headers, "titulo"), "Tarefa importada"),
		SectorID:      repository.NewID(models.CategorySectors.IDPrefix()),
		ServiceID:     repository.NewID(models.CategoryServices.IDPrefix()),
		TowerID:       repository.NewID(models.CategoryTowers.IDPrefix()),
		Location:      cell(row, findColumn(headers, "local"), ""),
		ResponsibleID: repository.NewID(models.CategoryResponsibles.IDPrefix()),
		Situation:     cell(row, findColumn(headers, "situacao"), "Aberto"),
		Criticality:   cell(row, findColumn(headers, "criticidade"), models.CriticalityMedium),
		Type:          cell(row, findColumn(headers, "tipo"), models.TaskTypeCorrective),
		Materials:     []string{},
		CallDate:      cell(row, findColumn(headers, "data"), repository.FormatDate(time.Now())),
		Description:   cell(row, findColumn(headers, "descricao"), ""),
		CreatedAt:     repository.FormatDate(time.Now()),
	}
}

// Import templates offered for download next to the upload form.
const (
	TaskTemplateCSV  = "Titulo,Local,Situacao,Criticidade,Tipo,Data,Descricao\n"
	VisitTemplateCSV = "Torre;Unidade;Situacao;Hora;Colaborador;Status;Retorno\n"
)

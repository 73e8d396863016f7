package repository

import (
	"encoding/json"
	"fmt"

	"backend/models"
	"backend/storage"
)

// codec converts one field between its entity-side and wire-side shapes.
// Most fields pass through unchanged; materials are the exception, stored
// remotely as a JSON-encoded string inside a text column.
type codec struct {
	encode func(any) (any, error)
	decode func(any) (any, error)
}

// fieldDef binds one entity field (by its JSON key) to a wire column.
// Def, when non-nil, fills the entity-side value if the wire row misses
// the column or holds null.
type fieldDef struct {
	entityKey string
	wireKey   string
	def       any
	codec     *codec
}

// Mapper translates one entity type between its API shape and the remote
// wire shape. Translation is table-driven so the field list is the single
// source of truth for both directions.
type Mapper struct {
	table  string
	fields []fieldDef
}

// Table returns the remote table this mapper serves.
func (m *Mapper) Table() string {
	return m.table
}

// ToWire converts an entity into a wire row. The entity is flattened through
// its JSON form so the mapping tables speak JSON keys on both sides.
func (m *Mapper) ToWire(entity any) (storage.Row, error) {
	flat, err := Flatten(entity)
	if err != nil {
		return nil, err
	}
	row := make(storage.Row, len(m.fields))
	for _, f := range m.fields {
		v, ok := flat[f.entityKey]
		if !ok || v == nil {
			v = f.def
		}
		if f.codec != nil && f.codec.encode != nil {
			v, err = f.codec.encode(v)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", f.entityKey, err)
			}
		}
		row[f.wireKey] = v
	}
	return row, nil
}

// PatchToWire converts a partial entity-side patch (JSON keys) into a wire
// patch. Keys absent from the mapping table are dropped, which keeps unknown
// client fields from reaching the remote store.
func (m *Mapper) PatchToWire(patch map[string]any) (storage.Row, error) {
	row := make(storage.Row, len(patch))
	for _, f := range m.fields {
		v, ok := patch[f.entityKey]
		if !ok {
			continue
		}
		if f.codec != nil && f.codec.encode != nil {
			var err error
			v, err = f.codec.encode(v)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", f.entityKey, err)
			}
		}
		row[f.wireKey] = v
	}
	return row, nil
}

// FromWire converts a wire row into the entity pointed to by out.
// Missing and null columns fall back to the field default, so rows written
// before a column existed still decode into a complete entity.
func (m *Mapper) FromWire(row storage.Row, out any) error {
	flat := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		v, ok := row[f.wireKey]
		if !ok || v == nil {
			flat[f.entityKey] = f.def
			continue
		}
		if f.codec != nil && f.codec.decode != nil {
			var err error
			v, err = f.codec.decode(v)
			if err != nil {
				return fmt.Errorf("decode %s: %w", f.entityKey, err)
			}
		}
		flat[f.entityKey] = v
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Flatten renders an entity as its JSON object form (camelCase keys). The
// cache uses it to merge partial updates into a typed entity.
func Flatten(entity any) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// Unflatten is the inverse of Flatten.
func Unflatten[T any](flat map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(flat)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}

// materialsCodec stores the material id list as a JSON array serialized into
// a text column, so the generic gateway never needs array-typed parameters.
var materialsCodec = &codec{
	encode: func(v any) (any, error) {
		if v == nil {
			return "[]", nil
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	},
	decode: func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("materials column holds %T, want string", v)
		}
		if s == "" {
			return []any{}, nil
		}
		var list []any
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return nil, fmt.Errorf("materials column: %w", err)
		}
		return list, nil
	},
}

// intCodec renders a numeric field as int64 on the wire. JSON flattening
// turns every number into float64; the remote column is INTEGER.
var intCodec = &codec{
	encode: func(v any) (any, error) {
		switch n := v.(type) {
		case float64:
			return int64(n), nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		default:
			return nil, fmt.Errorf("numeric field holds %T", v)
		}
	},
}

func plain(entityKey, wireKey string) fieldDef {
	return fieldDef{entityKey: entityKey, wireKey: wireKey, def: ""}
}

// TaskMapper translates maintenance tasks. Type defaults to corrective and
// materials to an empty list when the remote row predates those columns.
var TaskMapper = &Mapper{
	table: "tasks",
	fields: []fieldDef{
		plain("id", "id"),
		plain("title", "title"),
		plain("sectorId", "sector_id"),
		plain("serviceId", "service_id"),
		plain("towerId", "tower_id"),
		plain("location", "location"),
		plain("responsibleId", "responsible_id"),
		plain("situation", "situation"),
		plain("criticality", "criticality"),
		{entityKey: "type", wireKey: "type", def: models.TaskTypeCorrective},
		{entityKey: "materials", wireKey: "materials", def: []any{}, codec: materialsCodec},
		plain("callDate", "call_date"),
		plain("startDate", "start_date"),
		plain("endDate", "end_date"),
		plain("description", "description"),
		plain("createdAt", "created_at"),
	},
}

// VisitMapper translates technical visits.
var VisitMapper = &Mapper{
	table: "visits",
	fields: []fieldDef{
		plain("id", "id"),
		plain("tower", "tower"),
		plain("unit", "unit"),
		plain("situation", "situation"),
		plain("time", "time"),
		plain("collaborator", "collaborator"),
		plain("status", "status"),
		{entityKey: "returnDate", wireKey: "return_date", def: models.NoReturnDate},
	},
}

// ScheduleMapper translates weekly schedule rows.
var ScheduleMapper = &Mapper{
	table: "schedule",
	fields: []fieldDef{
		plain("id", "id"),
		plain("shift", "shift"),
		plain("monday", "monday"),
		plain("tuesday", "tuesday"),
		plain("wednesday", "wednesday"),
		plain("thursday", "thursday"),
		plain("friday", "friday"),
		plain("saturday", "saturday"),
		plain("workStartDate", "work_start_date"),
		plain("workEndDate", "work_end_date"),
		plain("workNoticeDate", "work_notice_date"),
	},
}

// MonthlyScheduleMapper translates monthly schedule rows.
var MonthlyScheduleMapper = &Mapper{
	table: "monthly_schedule",
	fields: []fieldDef{
		plain("id", "id"),
		plain("shift", "shift"),
		plain("week1", "week1"),
		plain("week2", "week2"),
		plain("week3", "week3"),
		plain("week4", "week4"),
		plain("workStartDate", "work_start_date"),
		plain("workEndDate", "work_end_date"),
		plain("workNoticeDate", "work_notice_date"),
	},
}

// ThirdPartyMapper translates third-party service contracts.
var ThirdPartyMapper = &Mapper{
	table: "third_party_schedule",
	fields: []fieldDef{
		plain("id", "id"),
		plain("company", "company"),
		plain("service", "service"),
		plain("frequency", "frequency"),
		plain("contact", "contact"),
		plain("workStartDate", "work_start_date"),
		plain("workEndDate", "work_end_date"),
		plain("workNoticeDate", "work_notice_date"),
	},
}

// PaintingMapper translates painting projects.
var PaintingMapper = &Mapper{
	table: "painting_projects",
	fields: []fieldDef{
		plain("id", "id"),
		plain("tower", "tower"),
		plain("local", "local"),
		plain("criticality", "criticality"),
		plain("startDate", "start_date"),
		plain("endDateForecast", "end_date_forecast"),
		plain("status", "status"),
		plain("paintDetails", "paint_details"),
		plain("quantity", "quantity"),
	},
}

// PurchaseMapper translates purchase requests. Quantity is the one numeric
// column in the whole remote schema.
var PurchaseMapper = &Mapper{
	table: "purchases",
	fields: []fieldDef{
		plain("id", "id"),
		{entityKey: "quantity", wireKey: "quantity", def: 0, codec: intCodec},
		plain("description", "description"),
		plain("local", "local"),
		plain("requestDate", "request_date"),
		plain("approvalDate", "approval_date"),
		plain("entryDate", "entry_date"),
	},
}

// CatalogMapper translates the flat settings catalogs. All six categories
// share one shape, so one mapper per category differs only by table.
func CatalogMapper(category models.CatalogCategory) *Mapper {
	return &Mapper{
		table: category.Table(),
		fields: []fieldDef{
			plain("id", "id"),
			plain("name", "name"),
		},
	}
}

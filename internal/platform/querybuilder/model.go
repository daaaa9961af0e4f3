package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the `db` tags of a table model.
// Columns tagged with the "readonly" option (ids, defaults) are skipped.
func InsertModel(table string, model any) (InsertBuilder, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return InsertBuilder{}, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...), nil
}

// UpdateModel builds an UPDATE setting every writable column of model.
func UpdateModel(table string, model any) (UpdateBuilder, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return UpdateBuilder{}, err
	}
	setMap := make(map[string]any, len(cols))
	for i, col := range cols {
		setMap[col] = vals[i]
	}
	return Update(table).SetMap(setMap), nil
}

// Columns lists every tagged column of model, readonly ones included.
func Columns(model any) []string {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil
	}

	out := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, _, ok := parseDBTag(typ.Field(i))
		if ok {
			out = append(out, col)
		}
	}
	return out
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, readonly, ok := parseDBTag(typ.Field(i))
		if !ok || readonly {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no writable db columns")
	}
	return cols, vals, nil
}

func parseDBTag(field reflect.StructField) (column string, readonly bool, ok bool) {
	if field.PkgPath != "" {
		return "", false, false
	}
	tag := strings.TrimSpace(field.Tag.Get("db"))
	if tag == "" || tag == "-" {
		return "", false, false
	}
	parts := strings.Split(tag, ",")
	column = strings.TrimSpace(parts[0])
	if column == "" || column == "-" {
		return "", false, false
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "readonly" {
			readonly = true
		}
	}
	return column, readonly, true
}

package util

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
)

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return value, fmt.Errorf("file not found: %s", file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

// Reads all rows of a csv file into structs of type T.
//
// Fields of T are matched against the header by their `csv` tag and empty
// cells keep the zero value. Fails on the first row with a wrong field count
// or a value that does not parse into its field.
func ReadCSVFromFile[T any](filename string, delimiter rune) (List[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows := NewList[T](100)
	for row, err := range ReadCSV[T](file, delimiter) {
		if err != nil {
			return nil, err
		}
		rows.Add(row)
	}
	return rows, nil
}

func ReadCSV[T any](r io.Reader, delimiter rune) func(yield func(T, error) bool) {
	return func(yield func(T, error) bool) {
		var val T

		reader := csv.NewReader(r)
		reader.Comma = delimiter
		reader.TrimLeadingSpace = true
		header, err := reader.Read()
		if err != nil {
			yield(val, fmt.Errorf("failed to read csv header: %w", err))
			return
		}
		name_row_mapping := NewDict[string, int](10)
		for i, name := range header {
			name_row_mapping[name] = i
		}

		typ := reflect.TypeOf(val)
		num_field := typ.NumField()
		fields := NewList[Triple[int, int, reflect.Kind]](num_field)
		for i := 0; i < num_field; i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("csv")
			if tag == "" {
				continue
			}
			if !name_row_mapping.ContainsKey(tag) {
				continue
			}
			row := name_row_mapping[tag]
			switch field.Type.Kind() {
			case reflect.Bool:
				fields.Add(MakeTriple(i, row, reflect.Bool))
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				fields.Add(MakeTriple(i, row, reflect.Int))
			case reflect.Float32, reflect.Float64:
				fields.Add(MakeTriple(i, row, reflect.Float64))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				fields.Add(MakeTriple(i, row, reflect.Uint))
			case reflect.String:
				fields.Add(MakeTriple(i, row, reflect.String))
			}
		}
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				yield(val, fmt.Errorf("failed to read csv row: %w", err))
				return
			}
			t := reflect.New(typ).Elem()
			for _, field := range fields {
				index := field.A
				row := field.B
				typ := field.C
				value := record[row]
				if value == "" {
					continue
				}
				f := t.Field(index)
				var err error
				switch typ {
				case reflect.Bool:
					var num bool
					num, err = strconv.ParseBool(value)
					f.SetBool(num)
				case reflect.Int:
					var num int64
					num, err = strconv.ParseInt(value, 10, 64)
					f.SetInt(num)
				case reflect.Uint:
					var num uint64
					num, err = strconv.ParseUint(value, 10, 64)
					f.SetUint(num)
				case reflect.Float64:
					var num float64
					num, err = strconv.ParseFloat(value, 64)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
				if err != nil {
					line, _ := reader.FieldPos(row)
					yield(val, fmt.Errorf("invalid value %q in column %q on line %v: %w", value, header[row], line, err))
					return
				}
			}
			value := t.Interface().(T)
			if !yield(value, nil) {
				break
			}
		}
	}
}

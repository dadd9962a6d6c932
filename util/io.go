package util

import (
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

//*******************************************
// csv
//*******************************************

var ErrCSVHeader = errors.New("unexpected csv header")

type CSVError struct {
	Line int
	Err  error
}

func (self *CSVError) Error() string {
	return fmt.Sprintf("line %v: %v", self.Line, self.Err)
}
func (self *CSVError) Unwrap() error {
	return self.Err
}

// Reads the csv rows of a file into structs of type T.
//
// Columns are matched to fields through the "csv" struct tag. If strict is set
// the header has to list exactly the tagged fields in declaration order.
// Iteration stops after the first yielded error.
func ReadCSVFromFile[T any](filename string, delimiter rune, strict bool) func(yield func(T, error) bool) {
	return func(yield func(T, error) bool) {
		file, err := os.Open(filename)
		if err != nil {
			var t T
			yield(t, err)
			return
		}
		defer file.Close()

		for row, err := range ReadCSV[T](file, delimiter, strict) {
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

func ReadCSV[T any](src io.Reader, delimiter rune, strict bool) func(yield func(T, error) bool) {
	return func(yield func(T, error) bool) {
		var zero T

		reader := csv.NewReader(src)
		reader.Comma = delimiter
		reader.LazyQuotes = true
		header, err := reader.Read()
		if err == io.EOF {
			yield(zero, &CSVError{1, ErrCSVHeader})
			return
		}
		if err != nil {
			yield(zero, _WrapCSVError(err, 1))
			return
		}
		name_row_mapping := NewDict[string, int](10)
		for i, name := range header {
			name_row_mapping[strings.TrimSpace(name)] = i
		}

		typ := reflect.TypeOf(zero)
		num_field := typ.NumField()
		fields := NewList[Triple[int, int, reflect.Kind]](num_field)
		tags := NewList[string](num_field)
		for i := 0; i < num_field; i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("csv")
			if tag == "" {
				continue
			}
			tags.Add(tag)
			if !name_row_mapping.ContainsKey(tag) {
				yield(zero, &CSVError{1, fmt.Errorf("%w: missing column %q", ErrCSVHeader, tag)})
				return
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
		if strict && strings.Join(header, string(delimiter)) != strings.Join(tags, string(delimiter)) {
			yield(zero, &CSVError{1, fmt.Errorf("%w: got %q", ErrCSVHeader, strings.Join(header, string(delimiter)))})
			return
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				yield(zero, _WrapCSVError(err, 0))
				return
			}
			line, _ := reader.FieldPos(0)
			t := reflect.New(typ).Elem()
			for _, field := range fields {
				index := field.A
				row := field.B
				kind := field.C
				value := record[row]
				f := t.Field(index)
				if kind == reflect.String {
					f.SetString(value)
					continue
				}
				value = strings.TrimSpace(value)
				if value == "" {
					yield(zero, &CSVError{line, fmt.Errorf("missing value in column %q", header[row])})
					return
				}
				var perr error
				switch kind {
				case reflect.Bool:
					num, err := strconv.ParseBool(value)
					f.SetBool(num)
					perr = err
				case reflect.Int:
					num, err := strconv.ParseInt(value, 10, 64)
					f.SetInt(num)
					perr = err
				case reflect.Uint:
					num, err := strconv.ParseUint(value, 10, 64)
					f.SetUint(num)
					perr = err
				case reflect.Float64:
					num, err := strconv.ParseFloat(value, 64)
					f.SetFloat(num)
					perr = err
				}
				if perr != nil {
					yield(zero, &CSVError{line, fmt.Errorf("invalid value %q in column %q", value, header[row])})
					return
				}
			}
			if !yield(t.Interface().(T), nil) {
				return
			}
		}
	}
}

func _WrapCSVError(err error, line int) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &CSVError{perr.Line, perr.Err}
	}
	return &CSVError{line, err}
}

//*******************************************
// json and gob files
//*******************************************

func FileExists(file string) bool {
	_, err := os.Stat(file)
	return err == nil
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

func WriteGobToFile[T any](value T, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(value); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadGobFromFile[T any](file string) (T, error) {
	var value T
	f, err := os.Open(file)
	if err != nil {
		return value, err
	}
	defer f.Close()

	err = gob.NewDecoder(f).Decode(&value)
	return value, err
}

package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital/hms/internal/platform/apperr"
)

// Messages for request values that cannot be decoded into their field type.
const (
	UUIDMessage    = "Must be a valid UUID."
	NumberMessage  = "A valid number is required."
	StringMessage  = "Not a valid string."
	BooleanMessage = "Must be a valid boolean."
	InvalidMessage = "Invalid value."
)

// invalidMessager is implemented by request types that report their own
// decode failure message.
type invalidMessager interface {
	InvalidMessage() string
}

var uuidType = reflect.TypeOf(uuid.UUID{})

// Bind decodes a JSON request body into dst, which must point to a struct
// with json tags. Unlike echo's binder, a value of the wrong type is reported
// as a ValidationError keyed by its field. Malformed JSON is a 400 HTTPError.
func Bind(c echo.Context, dst interface{}) error {
	req := c.Request()
	if req.Body == nil {
		return nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read request body.").SetInternal(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return echo.ErrUnsupportedMediaType
	}
	return Decode(body, dst)
}

// Decode is Bind without the HTTP request.
func Decode(body []byte, dst interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return apperr.NewValidationError(apperr.NonFieldErrors,
				fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", te.Value))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "JSON parse error - "+err.Error()).SetInternal(err)
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	result := &apperr.ValidationError{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}
		data, ok := raw[name]
		if !ok {
			continue
		}
		fv := v.Field(i)
		if err := json.Unmarshal(data, fv.Addr().Interface()); err != nil {
			fv.Set(reflect.Zero(sf.Type))
			result.Add(name, decodeMessage(sf.Type))
		}
	}
	if result.Empty() {
		return nil
	}
	return result
}

func jsonName(sf reflect.StructField) string {
	if sf.PkgPath != "" {
		return ""
	}
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return sf.Name
}

func decodeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if m, ok := reflect.Zero(t).Interface().(invalidMessager); ok {
		return m.InvalidMessage()
	}
	if t == uuidType {
		return UUIDMessage
	}
	switch t.Kind() {
	case reflect.String:
		return StringMessage
	case reflect.Bool:
		return BooleanMessage
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return NumberMessage
	}
	return InvalidMessage
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo.  Field names in
// errors are the JSON names the client sent.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Champ invalide : %s", ve[0].Field()))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Données invalides")
	}
	return nil
}

// StrictJSONSerializer is echo's JSON serializer with unknown fields
// refused, so clients cannot smuggle server-owned fields such as status.
type StrictJSONSerializer struct{}

func (StrictJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (StrictJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		var ute *json.UnmarshalTypeError
		switch {
		case errors.As(err, &ute):
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Champ invalide : %s", ute.Field)).SetInternal(err)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Champ non permis : %s", field)).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide").SetInternal(err)
	}
	return nil
}

// bind decodes and validates a request body.  On failure nothing has been
// written yet: the returned 400 *echo.HTTPError is rendered by
// HTTPErrorHandler, so callers must stop and return it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err)
	}
	return nil
}

func badRequest(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, "Données invalides").SetInternal(err)
}

// parseDate accepts a calendar day (2006-01-02) or an RFC 3339 timestamp
// and returns the day at UTC midnight.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/estimate"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func jsonError(e *core.RequestEvent, status int, msg string) error {
	return e.JSON(status, errorBody{Error: msg})
}

func jsonFieldError(e *core.RequestEvent, status int, field, msg string) error {
	return e.JSON(status, errorBody{Error: msg, Field: field})
}

// inputError maps parse and validation failures to a 400 response naming
// the offending field. It returns false for any other error.
func inputError(e *core.RequestEvent, err error) (bool, error) {
	var numErr *estimate.InvalidNumericInputError
	if errors.As(err, &numErr) {
		return true, jsonFieldError(e, http.StatusBadRequest, numErr.Field, numErr.Error())
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		field, msg := firstValidationError(verrs)
		return true, jsonFieldError(e, http.StatusBadRequest, field, field+": "+msg)
	}

	return false, nil
}

// firstValidationError picks the first failing field in input order so the
// response is stable.
func firstValidationError(verrs validation.Errors) (string, string) {
	order := append(append([]string{}, projectFieldOrder...), estimate.NumericFields...)
	for _, name := range order {
		if err, ok := verrs[name]; ok {
			return name, err.Error()
		}
	}
	for name, err := range verrs {
		return name, err.Error()
	}
	return "", ""
}

// decodeFields reads a JSON object body into a field map. Numbers keep their
// literal text so decimals are parsed exactly. An empty body yields an empty
// map.
func decodeFields(r *http.Request) (map[string]any, error) {
	fields := map[string]any{}
	if r.Body == nil {
		return fields, nil
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// decodeJSON reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

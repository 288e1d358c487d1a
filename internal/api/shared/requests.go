package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance; validator.Validate is safe for concurrent use.
var validate = validator.New()

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates v, preferring its own Validate method when it
// has one and falling back to struct tags.
func ValidateRequest(v interface{}) error {
	if withValidate, ok := v.(interface{ Validate() error }); ok {
		return withValidate.Validate()
	}
	return validate.Struct(v)
}

package validation

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("web_origin", validateWebOrigin); err != nil {
		panic(fmt.Sprintf("failed to register web_origin validator: %v", err))
	}
}

func validateWebOrigin(fl validator.FieldLevel) bool {
	return IsWebOrigin(fl.Field().String())
}

// IsWebOrigin reports whether s has the serialized-origin shape a browser
// puts in the Origin header: scheme://host[:port] with no path, query,
// fragment or userinfo.
func IsWebOrigin(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || u.Hostname() == "" {
		return false
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return false
	}
	return true
}

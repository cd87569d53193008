// Package validation checks decoded request structs against their
// `validate` struct tags and reports failures as INVALID_ARGUMENT errors
// naming each offending JSON field.
//
//	type statementRequest struct {
//	    DB    string `json:"db" validate:"required"`
//	    Query string `json:"query" validate:"required"`
//	}
//	err := validation.Validate(req)
package validation

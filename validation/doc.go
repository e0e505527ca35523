// Package validation validates configuration and request structs with
// go-playground/validator struct tags and converts failures into
// INVALID_INPUT *errors.AppError values.
//
//	type utteranceRequest struct {
//	    Samples []float64 `json:"samples" validate:"required,min=1"`
//	}
//	if err := validation.Validate(req); err != nil {
//	    // err is an *errors.AppError with per-field details
//	}
//
// Besides the built-in tags, "langcode" accepts an empty string or a
// two or three letter lowercase ISO 639 language code.
package validation

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "github.com/pdiddy/deedparse/pkg/types"

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	Text *string `json:"text"`
}

// FormFieldsRequest is the body of POST /api/form-fields.
type FormFieldsRequest struct {
	Data types.FieldValues `json:"data"`
}

// FormFieldsResponse maps extraction fields to document form-field names.
type FormFieldsResponse struct {
	Fields map[string]string `json:"fields"`
}

// ErrorResponse is returned with every 4xx and 5xx status.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

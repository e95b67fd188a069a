package errors

import "net/http"

var (
	ErrPropertyNotFound = &Exception{
		Message:    "property not found",
		StatusCode: http.StatusNotFound,
	}
	ErrClientNotFound = &Exception{
		Message:    "client not found",
		StatusCode: http.StatusNotFound,
	}
	ErrTaskNotFound = &Exception{
		Message:    "task not found",
		StatusCode: http.StatusNotFound,
	}
	ErrCollaboratorNotFound = &Exception{
		Message:    "collaborator not found",
		StatusCode: http.StatusNotFound,
	}
)

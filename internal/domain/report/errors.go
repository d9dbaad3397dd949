package report

import "errors"

var (
	ErrNoEmployees = errors.New("no employees selected for the report")
)

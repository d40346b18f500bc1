// Package core provides the validation and repair pipeline for sales records.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Every code here is fatal: the run stops and no output file is written.
//
// # Schema Errors (SCH001-SCH099)
//
//	SCH001 - Missing column: A required column is missing from the input
//	         Action: Check the header row against the sales export template
//	         Match: *SchemaError
//
// # Numeric Errors (NUM001-NUM099)
//
//	NUM001 - Invalid number: A numeric column contains text
//	         Action: Fix or blank the cell named in the error
//	         Match: *NumericError
//
// # Date Errors (DATE001-DATE099)
//
//	DATE001 - Unreadable dates: ORDERDATE matches neither date layout
//	          Action: Export dates as M/D/YYYY or D/M/YYYY
//	          Match: *DateFormatError
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File not found: The input file does not exist
//	          Patterns: "no such file"
//
//	FILE002 - Invalid CSV: The input is not a valid delimited file
//	          Patterns: "invalid csv", "parse error"
//
//	FILE003 - Encoding error: The input could not be decoded
//	          Patterns: "encoding"
//
//	FILE004 - Empty file: The input has no header row
//	          Patterns: "empty file"
//
//	FILE005 - Unsupported format: The file extension is not .csv or .xlsx
//	          Patterns: "unsupported format"
//
//	FILE006 - Write failed: The output could not be written
//	          Patterns: "write output"
//
// # Default Error (ERR000)
//
// Fallback when no type or pattern matches.
//
// # Matching
//
// Typed errors are matched first with errors.As. Remaining errors are matched
// case-insensitively with strings.Contains; the first matching pattern wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	schemaMessage = UserMessage{
		Message: "A required column is missing from the input",
		Action:  "Check the header row against the sales export template",
		Code:    "SCH001",
	}
	numericMessage = UserMessage{
		Message: "A numeric column contains text",
		Action:  "Fix or blank the cell named in the error",
		Code:    "NUM001",
	}
	dateMessage = UserMessage{
		Message: "ORDERDATE matches neither date layout",
		Action:  "Export dates as M/D/YYYY or D/M/YYYY",
		Code:    "DATE001",
	}
)

// errorPatterns maps untyped error text (case-insensitive) to user messages.
// More specific patterns must come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The input file does not exist",
			Action:  "Check the input path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The input is not a valid delimited file",
			Action:  "Ensure the file uses a consistent delimiter and quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "The input is not a valid delimited file",
			Action:  "Ensure the file uses a consistent delimiter and quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding",
		msg: UserMessage{
			Message: "The input could not be decoded",
			Action:  "Set INPUT_ENCODING to latin1, windows1252 or utf8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The input has no header row",
			Action:  "Provide a file with a header and data rows",
			Code:    "FILE004",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "The file extension is not supported",
			Action:  "Use a .csv or .xlsx file",
			Code:    "FILE005",
		},
	},
	{
		pattern: "write output",
		msg: UserMessage{
			Message: "The output could not be written",
			Action:  "Check that the output directory exists and is writable",
			Code:    "FILE006",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts an error into a user-friendly message.
// Returns an empty UserMessage if err is nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var schemaErr *SchemaError
	var numErr *NumericError
	var dateErr *DateFormatError
	switch {
	case errors.As(err, &schemaErr):
		return schemaMessage
	case errors.As(err, &numErr):
		return numericMessage
	case errors.As(err, &dateErr):
		return dateMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

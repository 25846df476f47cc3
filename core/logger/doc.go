// Package logger is a standardized event logging framework for the shell.
//
// Events are written as newline delimited JSON objects so sessions can be
// audited and summarized after the fact.
package logger

// Package nl2sql converts an English question into a single PostgreSQL SQL
// statement through an external chat-completions API. The returned SQL is
// untrusted text; no validation happens here.
package nl2sql

import "context"

type TableContext struct {
	TableName string   `json:"table_name"`
	Columns   []string `json:"columns"`
}

type Request struct {
	Question string         `json:"question"`
	Tables   []TableContext `json:"tables"`
}

type Result struct {
	SQL      string `json:"sql"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}

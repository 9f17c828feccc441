package repository

import "errors"

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrBlankKey       = errors.New("key is blank")
	ErrSchemaNotReady = errors.New("kv table does not exist")
)

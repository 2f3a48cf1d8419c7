package repositories

import (
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

const (
	MetaRecord   = "record"
	MetaRecordID = "record_id"
)

// NewRecordNotFoundError reports a lookup by ID that found nothing
func NewRecordNotFoundError(record, id string) error {
	return dnderr.NotFoundf("%s with ID '%s' not found", record, id).
		WithMeta(MetaRecord, record).
		WithMeta(MetaRecordID, id)
}

// NewRecordExistsError reports a create that collided with an existing ID
func NewRecordExistsError(record, id string) error {
	return dnderr.AlreadyExistsf("%s with ID '%s' already exists", record, id).
		WithMeta(MetaRecord, record).
		WithMeta(MetaRecordID, id)
}

package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/angelmondragon/shopnex/pkg/storage"
)

// ErrorDump is the log-friendly shape of an error chain.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Retryable  bool     `json:"retryable,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	// Storage names the slot-storage sentinel found in the chain, if any.
	Storage string `json:"storage,omitempty"`

	PG *PGDetails `json:"pg,omitempty"`
}

// PGDetails carries postgres diagnostics from either driver.
type PGDetails struct {
	Code       string `json:"code,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

var storageSentinels = []struct {
	err  error
	name string
}{
	{storage.ErrQuotaExceeded, "quota_exceeded"},
	{storage.ErrUnavailable, "unavailable"},
	{storage.ErrNotFound, "not_found"},
}

// Dump flattens an error chain for structured logging. Slot-storage failures
// are named and postgres details are lifted out when the sql backend failed.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
		d.Retryable = MetadataFor(te.Code()).Retryable
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	for _, s := range storageSentinels {
		if errors.Is(err, s.err) {
			d.Storage = s.name
			break
		}
	}
	d.PG = pgDetails(err)
	return d
}

func pgDetails(err error) *PGDetails {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PGDetails{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PGDetails{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}

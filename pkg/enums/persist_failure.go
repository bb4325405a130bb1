package enums

// PersistFailure classifies why a cart snapshot did not reach storage.
type PersistFailure string

const (
	PersistFailureQuotaExceeded PersistFailure = "quota_exceeded"
	PersistFailureUnavailable   PersistFailure = "unavailable"
	PersistFailureCanceled      PersistFailure = "canceled"
	PersistFailureNoStorage     PersistFailure = "no_storage"
	PersistFailureEncode        PersistFailure = "encode"
	PersistFailurePanic         PersistFailure = "panic"
	PersistFailureUnknown       PersistFailure = "unknown"
)

func (p PersistFailure) String() string {
	return string(p)
}

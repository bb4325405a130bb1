package enums

import "fmt"

// CartOperation names a cart mutation in logs and metrics.
type CartOperation string

const (
	CartOperationAdd            CartOperation = "add"
	CartOperationRemove         CartOperation = "remove"
	CartOperationUpdateQuantity CartOperation = "update"
	CartOperationClear          CartOperation = "clear"
)

var validCartOperations = []CartOperation{
	CartOperationAdd,
	CartOperationRemove,
	CartOperationUpdateQuantity,
	CartOperationClear,
}

// String implements fmt.Stringer.
func (c CartOperation) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartOperation.
func (c CartOperation) IsValid() bool {
	for _, candidate := range validCartOperations {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartOperation converts raw input into a CartOperation.
func ParseCartOperation(value string) (CartOperation, error) {
	for _, candidate := range validCartOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart operation %q", value)
}

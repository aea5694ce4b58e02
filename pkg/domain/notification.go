package domain

// ToastType controls how a toast is presented.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
)

// ValidToastType reports whether t is one of the known toast types.
func ValidToastType(t ToastType) bool {
	switch t {
	case ToastSuccess, ToastError, ToastInfo:
		return true
	}
	return false
}

// Toast is a transient user-facing message.
type Toast struct {
	ID          string    `json:"id"`
	Type        ToastType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

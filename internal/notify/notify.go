package notify

import "context"

// PermissionState reports whether notifications can be delivered. It is
// an explicit state consumers can branch on, not a buried alert.
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
)

func (s PermissionState) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Notifier delivers notifications to the device the owner reads.
type Notifier interface {
	// Permission reports (and caches) whether delivery is possible.
	Permission(ctx context.Context) PermissionState
	// Send delivers one notification now.
	Send(ctx context.Context, title, body string) error
}

package lifecycle

import "rentmate-client-core/internal/domain"

type Phase string

const (
	PhaseLoading Phase = "LOADING"
	PhaseSuccess Phase = "SUCCESS"
	PhaseError   Phase = "ERROR"
)

// SessionState is the coarse observable state published to the UI.
//
// In the Success phase, ErrorMessage may carry a recoverable command
// failure next to the last good snapshot: the UI keeps rendering Details
// and may offer a retry when CanRetry is set. In the Error phase the
// failure is fatal and a full Load is required.
type SessionState struct {
	Phase        Phase
	Details      *domain.FullTransactionDetails
	Capabilities domain.Capabilities
	ErrorMessage string
	CanRetry     bool
}

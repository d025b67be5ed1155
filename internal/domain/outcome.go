package domain

// Outcome is the closed result enumeration returned by the registration and
// sign-in flows. Services convert every validation and collaborator failure
// into one of these values at the operation boundary; raw store or network
// errors never cross it. The wire values double as machine-readable status
// strings for API clients.
type Outcome string

const (
	// OutcomeOTPSent means a pending registration was stored and a
	// verification code dispatched.
	OutcomeOTPSent Outcome = "otp_sent"

	// OutcomeSuccess is the terminal success of both flows: account created
	// (registration) or credentials accepted (sign-in).
	OutcomeSuccess Outcome = "success"

	// OutcomeInvalidData covers malformed email or too-short password.
	OutcomeInvalidData Outcome = "invalid_data"

	// OutcomeInvalidEmailDomain means the address is well-formed but outside
	// the accepted domain. Kept distinct from OutcomeInvalidData so callers
	// can render different guidance.
	OutcomeInvalidEmailDomain Outcome = "invalid_email_domain"

	// OutcomeUserExists means an account already exists for the address.
	OutcomeUserExists Outcome = "user_exists"

	// OutcomeInvalidOTP merges wrong code, expired code, and no pending
	// registration at all, so a caller cannot tell which factor failed.
	OutcomeInvalidOTP Outcome = "invalid_otp"

	// OutcomeNotifyFailed means the pending registration was stored but the
	// verification email could not be sent. The record is retained; a fresh
	// submission supersedes it.
	OutcomeNotifyFailed Outcome = "notify_failed"

	// OutcomeFailed is the generic failure class: account creation failed,
	// credentials rejected, or an unexpected collaborator error.
	OutcomeFailed Outcome = "failed"
)

// Message returns the human-readable text for an outcome. Each outcome maps
// 1:1 to a distinct message.
func (o Outcome) Message() string {
	switch o {
	case OutcomeOTPSent:
		return "verification code sent to your email"
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidData:
		return "please check your email and password format"
	case OutcomeInvalidEmailDomain:
		return "please use an email address on the accepted domain"
	case OutcomeUserExists:
		return "account already exists"
	case OutcomeInvalidOTP:
		return "invalid or expired verification code"
	case OutcomeNotifyFailed:
		return "could not send verification code, please try again"
	case OutcomeFailed:
		return "request failed"
	default:
		return string(o)
	}
}

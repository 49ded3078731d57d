package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrNotAuthorized capability check failed
	ErrNotAuthorized ErrorCode = 100001
	// ErrSystemShutDown mutating call after shutdown
	ErrSystemShutDown ErrorCode = 100002
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100003

	// ErrUnrecognizedCollateral collateral class not in the recognized set
	ErrUnrecognizedCollateral ErrorCode = 100100
	// ErrUnrecognizedSeries series not registered
	ErrUnrecognizedSeries ErrorCode = 100101
	// ErrDuplicateSeries series with the same maturity exists
	ErrDuplicateSeries ErrorCode = 100102
	// ErrSeriesMatured borrowing against a matured series
	ErrSeriesMatured ErrorCode = 100103
	// ErrUnsupportedCollateral no accrual or price source bound for the class
	ErrUnsupportedCollateral ErrorCode = 100104

	// ErrInsufficientBalance subtraction would go negative
	ErrInsufficientBalance ErrorCode = 100200
	// ErrUndercollateralized safety check failed
	ErrUndercollateralized ErrorCode = 100201
	// ErrInsufficientDebt grab requested more debt than the account owes
	ErrInsufficientDebt ErrorCode = 100202

	// ErrTransferFailed custody or token call failed
	ErrTransferFailed ErrorCode = 100300
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                "unknown error",
	ErrNotAuthorized:          "not authorized",
	ErrSystemShutDown:         "system shut down",
	ErrInvalidAmount:          "invalid amount",
	ErrUnrecognizedCollateral: "unrecognized collateral",
	ErrUnrecognizedSeries:     "unrecognized series",
	ErrDuplicateSeries:        "duplicate series",
	ErrSeriesMatured:          "series matured",
	ErrUnsupportedCollateral:  "unsupported collateral",
	ErrInsufficientBalance:    "insufficient balance",
	ErrUndercollateralized:    "undercollateralized",
	ErrInsufficientDebt:       "insufficient debt",
	ErrTransferFailed:         "transfer failed",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

// Message human readable message
func (e ErrorCode) Message() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return errorMessages[ErrUnknown]
}

func (e ErrorCode) Error() string {
	return e.Message()
}

package execution

import (
	"errors"
	"fmt"

	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

// StatusError reports a terminal network status: a failed precheck or a
// transaction that reached consensus and failed there.
type StatusError struct {
	Code status.Code
	TxID entity.TransactionID
}

func (e *StatusError) Error() string {
	if e.TxID.IsZero() {
		return fmt.Sprintf("exceptional status %s", e.Code)
	}
	return fmt.Sprintf("transaction %s failed with status %s", e.TxID, e.Code)
}

// AsStatusError unwraps err into a StatusError, reporting whether it is one.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	ok := errors.As(err, &se)
	return se, ok
}

// MaxAttemptsError reports an operation that exhausted its attempt budget
// without a conclusive answer from any node.
type MaxAttemptsError struct {
	Attempts int
	LastErr  error
}

func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *MaxAttemptsError) Unwrap() error { return e.LastErr }

// AsMaxAttemptsError unwraps err into a MaxAttemptsError.
func AsMaxAttemptsError(err error) (*MaxAttemptsError, bool) {
	var me *MaxAttemptsError
	ok := errors.As(err, &me)
	return me, ok
}

// PaymentLimitError reports a query whose asked cost exceeds the effective
// payment limit. The query was not submitted.
type PaymentLimitError struct {
	Cost  hbar.Hbar
	Limit hbar.Hbar
}

func (e *PaymentLimitError) Error() string {
	return fmt.Sprintf("query cost %s exceeds the payment limit %s", e.Cost, e.Limit)
}

// AsPaymentLimitError unwraps err into a PaymentLimitError.
func AsPaymentLimitError(err error) (*PaymentLimitError, bool) {
	var pe *PaymentLimitError
	ok := errors.As(err, &pe)
	return pe, ok
}

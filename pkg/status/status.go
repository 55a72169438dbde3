// Package status defines the network's closed response-code space and its
// partition into terminal success, retryable transient codes, and terminal
// failures. The execution engine keys every retry decision off this
// partition; everything not explicitly listed as retryable is terminal.
package status

import "fmt"

// Code is a network response status code. The numeric values are part of the
// wire contract and must not be reordered.
type Code int32

const (
	// OK means the node accepted the request at precheck. For a query
	// response header it doubles as terminal success.
	OK Code = 0
	// InvalidTransaction is a malformed transaction envelope.
	InvalidTransaction Code = 1
	// PayerAccountNotFound means the paying account does not exist.
	PayerAccountNotFound Code = 2
	// InvalidTransactionStart is a valid-start timestamp outside the
	// acceptable window.
	InvalidTransactionStart Code = 5
	// InvalidSignature means a required signature is missing or wrong.
	InvalidSignature Code = 7
	// InsufficientTxFee means the offered fee does not cover the charge.
	InsufficientTxFee Code = 9
	// InsufficientPayerBalance means the payer cannot cover the fee.
	InsufficientPayerBalance Code = 10
	// DuplicateTransaction means this transaction id was already submitted.
	// During failover this is the expected answer from the second node.
	DuplicateTransaction Code = 11
	// Busy means the node is overloaded and the request should be retried.
	Busy Code = 12
	// InvalidFileID references a nonexistent file.
	InvalidFileID Code = 14
	// InvalidAccountID references a nonexistent account.
	InvalidAccountID Code = 15
	// InvalidContractID references a nonexistent contract.
	InvalidContractID Code = 16
	// ReceiptNotFound means no receipt is stored for the transaction id.
	ReceiptNotFound Code = 18
	// RecordNotFound means no record is stored for the transaction id.
	RecordNotFound Code = 19
	// Unknown means consensus has not yet reached the transaction; the
	// receipt must be polled again.
	Unknown Code = 21
	// Success is the terminal success status in a receipt.
	Success Code = 22
	// FailInvalid reports an invariant failure inside the node.
	FailInvalid Code = 23
	// InsufficientGas means the supplied gas was exhausted.
	InsufficientGas Code = 30
	// ContractRevertExecuted means the contract ran and reverted.
	ContractRevertExecuted Code = 33
	// PlatformTransactionNotCreated means the platform could not ingest the
	// transaction; retryable.
	PlatformTransactionNotCreated Code = 36
	// PlatformNotActive means the consensus platform is not serving yet;
	// retryable.
	PlatformNotActive Code = 38
	// ThrottledAtConsensus means the network throttled the operation after
	// submission; retryable.
	ThrottledAtConsensus Code = 366
)

var codeNames = map[Code]string{
	OK:                            "OK",
	InvalidTransaction:            "INVALID_TRANSACTION",
	PayerAccountNotFound:          "PAYER_ACCOUNT_NOT_FOUND",
	InvalidTransactionStart:       "INVALID_TRANSACTION_START",
	InvalidSignature:              "INVALID_SIGNATURE",
	InsufficientTxFee:             "INSUFFICIENT_TX_FEE",
	InsufficientPayerBalance:      "INSUFFICIENT_PAYER_BALANCE",
	DuplicateTransaction:          "DUPLICATE_TRANSACTION",
	Busy:                          "BUSY",
	InvalidAccountID:              "INVALID_ACCOUNT_ID",
	InvalidContractID:             "INVALID_CONTRACT_ID",
	InvalidFileID:                 "INVALID_FILE_ID",
	ContractRevertExecuted:        "CONTRACT_REVERT_EXECUTED",
	PlatformTransactionNotCreated: "PLATFORM_TRANSACTION_NOT_CREATED",
	PlatformNotActive:             "PLATFORM_NOT_ACTIVE",
	ReceiptNotFound:               "RECEIPT_NOT_FOUND",
	RecordNotFound:                "RECORD_NOT_FOUND",
	Unknown:                       "UNKNOWN",
	Success:                       "SUCCESS",
	FailInvalid:                   "FAIL_INVALID",
	InsufficientGas:               "INSUFFICIENT_GAS",
	ThrottledAtConsensus:          "THROTTLED_AT_CONSENSUS",
}

// String returns the SCREAMING_SNAKE name of the code, or a numeric form for
// codes outside the known set.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("RESPONSE_CODE(%d)", int32(c))
}

// IsSuccess reports terminal success: OK at precheck, SUCCESS in a receipt.
func (c Code) IsSuccess() bool {
	return c == OK || c == Success
}

// IsRetryable reports the transient codes the engine re-submits with backoff:
// node busy, platform not serving, throttling, and ingestion races.
func (c Code) IsRetryable() bool {
	switch c {
	case Busy, PlatformNotActive, PlatformTransactionNotCreated, ThrottledAtConsensus:
		return true
	}
	return false
}

// IsTerminal reports codes that end the operation immediately: anything that
// is neither success nor retryable.
func (c Code) IsTerminal() bool {
	return !c.IsSuccess() && !c.IsRetryable()
}

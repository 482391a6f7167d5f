package datafilter

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/cwbudde/algo-bioflow/dsp/delay"
	"github.com/cwbudde/algo-bioflow/dsp/filter/design/iir"
	"github.com/cwbudde/algo-bioflow/dsp/rolling"
	"github.com/cwbudde/algo-bioflow/stats/frequency"
)

// ExitCode mirrors the BrainFlow exit codes.
type ExitCode int

const (
	StatusOK ExitCode = iota
	PortAlreadyOpenError
	UnableToOpenPortError
	SetPortError
	BoardWriteError
	IncommingMsgError
	InitialMsgError
	BoardNotReadyError
	StreamAlreadyRunError
	InvalidBufferSizeError
	StreamThreadError
	StreamThreadIsNotRunning
	EmptyBufferError
	InvalidArgumentsError
	UnsupportedBoardError
	BoardNotCreatedError
	AnotherBoardIsCreatedError
	GeneralError
	SyncTimeoutError
	JSONNotFoundError
	NoSuchDataInJSONError
	ClassifierIsNotPreparedError
	AnotherClassifierIsPreparedError
	UnsupportedClassifierAndMetricCombinationError
)

var exitCodeNames = [...]string{
	"STATUS_OK",
	"PORT_ALREADY_OPEN_ERROR",
	"UNABLE_TO_OPEN_PORT_ERROR",
	"SET_PORT_ERROR",
	"BOARD_WRITE_ERROR",
	"INCOMMING_MSG_ERROR",
	"INITIAL_MSG_ERROR",
	"BOARD_NOT_READY_ERROR",
	"STREAM_ALREADY_RUN_ERROR",
	"INVALID_BUFFER_SIZE_ERROR",
	"STREAM_THREAD_ERROR",
	"STREAM_THREAD_IS_NOT_RUNNING",
	"EMPTY_BUFFER_ERROR",
	"INVALID_ARGUMENTS_ERROR",
	"UNSUPPORTED_BOARD_ERROR",
	"BOARD_NOT_CREATED_ERROR",
	"ANOTHER_BOARD_IS_CREATED_ERROR",
	"GENERAL_ERROR",
	"SYNC_TIMEOUT_ERROR",
	"JSON_NOT_FOUND_ERROR",
	"NO_SUCH_DATA_IN_JSON_ERROR",
	"CLASSIFIER_IS_NOT_PREPARED_ERROR",
	"ANOTHER_CLASSIFIER_IS_PREPARED_ERROR",
	"UNSUPPORTED_CLASSIFIER_AND_METRIC_COMBINATION_ERROR",
}

func (c ExitCode) String() string {
	if c < 0 || int(c) >= len(exitCodeNames) {
		return fmt.Sprintf("ExitCode(%d)", int(c))
	}

	return exitCodeNames[c]
}

// Error is the error type returned by every exported function of this
// package. Two errors match under errors.Is when their codes are equal.
type Error struct {
	Code ExitCode
	Msg  string
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrInvalidArguments = &Error{Code: InvalidArgumentsError}
	ErrGeneral          = &Error{Code: GeneralError}
)

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns StatusOK for nil, the code carried by an *Error anywhere in
// err's chain, and GeneralError for any other error.
func CodeOf(err error) ExitCode {
	if err == nil {
		return StatusOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return GeneralError
}

func invalidArgs(format string, args ...any) *Error {
	return &Error{Code: InvalidArgumentsError, Msg: fmt.Sprintf(format, args...)}
}

func general(format string, args ...any) *Error {
	return &Error{Code: GeneralError, Msg: fmt.Sprintf(format, args...)}
}

// translate maps errors from the dsp packages onto exit codes.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, iir.ErrInvalidOrder),
		errors.Is(err, iir.ErrInvalidFamily),
		errors.Is(err, iir.ErrInvalidBand),
		errors.Is(err, iir.ErrInvalidSampleRate),
		errors.Is(err, iir.ErrInvalidFrequency),
		errors.Is(err, iir.ErrInvalidRipple),
		errors.Is(err, rolling.ErrInvalidPeriod),
		errors.Is(err, delay.ErrInvalidSize),
		errors.Is(err, frequency.ErrInvalidLength),
		errors.Is(err, frequency.ErrInvalidWindow),
		errors.Is(err, frequency.ErrInvalidSampleRate),
		errors.Is(err, frequency.ErrInvalidBand):
		return &Error{Code: InvalidArgumentsError, Msg: err.Error(), Err: err}
	default:
		return &Error{Code: GeneralError, Msg: err.Error(), Err: err}
	}
}

// recoverInto converts a panic into a GeneralError stored in *err.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		dataLogger().WithField("stack", string(debug.Stack())).Errorf("recovered panic: %v", r)
		*err = general("internal error: %v", r)
	}
}

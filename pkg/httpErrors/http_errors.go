package httpErrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error codes emitted by the ingestion pipeline and its read path.
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidMediaType      = "INVALID_MEDIA_TYPE"
	CodeUploadTooLarge        = "UPLOAD_TOO_LARGE"
	CodeStorageIOError        = "STORAGE_IO_ERROR"
	CodeProxyGenerationFailed = "PROXY_GENERATION_FAILED"
	CodeProcessingFailed      = "PROCESSING_FAILED"
	CodeVideoNotFound         = "VIDEO_NOT_FOUND"
	CodeHlsNotReady           = "HLS_NOT_READY"

	// CodeInternalError covers unclassified failures (DB outages, lost
	// connections); the pipeline codes above are never reused for those.
	CodeInternalError = "INTERNAL_ERROR"
)

type RestErr interface {
	Status() int
	Code() string
	Error() string
	Causes() interface{}
}

type RestError struct {
	ErrStatus  int         `json:"status,omitempty"`
	ErrCode    string      `json:"error"`
	ErrMessage string      `json:"message,omitempty"`
	ErrCauses  interface{} `json:"-"`
}

func (e RestError) Status() int {
	return e.ErrStatus
}

func (e RestError) Code() string {
	return e.ErrCode
}

func (e RestError) Error() string {
	return fmt.Sprintf("status: %d - code: %s - message: %s", e.ErrStatus, e.ErrCode, e.ErrMessage)
}

func (e RestError) Causes() interface{} {
	return e.ErrCauses
}

func NewRestError(status int, code string, message string, causes interface{}) RestErr {
	return RestError{
		ErrStatus:  status,
		ErrCode:    code,
		ErrMessage: message,
		ErrCauses:  causes,
	}
}

func NewInvalidRequestError(message string) RestErr {
	return RestError{ErrStatus: http.StatusBadRequest, ErrCode: CodeInvalidRequest, ErrMessage: message}
}

func NewInvalidMediaTypeError() RestErr {
	return RestError{ErrStatus: http.StatusBadRequest, ErrCode: CodeInvalidMediaType, ErrMessage: "Only MP4 is supported"}
}

func NewUploadTooLargeError() RestErr {
	return RestError{ErrStatus: http.StatusRequestEntityTooLarge, ErrCode: CodeUploadTooLarge, ErrMessage: "Upload exceeds size limit"}
}

func NewStorageIOError(causes interface{}) RestErr {
	return RestError{ErrStatus: http.StatusInternalServerError, ErrCode: CodeStorageIOError, ErrMessage: "Storage IO error", ErrCauses: causes}
}

func NewVideoNotFoundError() RestErr {
	return RestError{ErrStatus: http.StatusNotFound, ErrCode: CodeVideoNotFound, ErrMessage: "Video not found"}
}

func NewHlsNotReadyError() RestErr {
	return RestError{ErrStatus: http.StatusConflict, ErrCode: CodeHlsNotReady, ErrMessage: "HLS is not ready"}
}

func NewInternalServerError(causes interface{}) RestErr {
	return RestError{ErrStatus: http.StatusInternalServerError, ErrCode: CodeInternalError, ErrMessage: "Internal server error", ErrCauses: causes}
}

// ParseErrors maps any error onto a RestErr without leaking internal detail.
func ParseErrors(err error) RestErr {
	var restErr RestErr
	if errors.As(err, &restErr) {
		return restErr
	}
	return NewInternalServerError(err.Error())
}

// ErrorResponse is the delivery-layer helper: status code plus JSON body.
func ErrorResponse(err error) (int, interface{}) {
	restErr := ParseErrors(err)
	return restErr.Status(), restErr
}

package render

import (
	"encoding/json"
	"net/http"

	"levra/core"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(v)
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// CodeError maps a domain error code onto an http response
func CodeError(w http.ResponseWriter, err error) {
	code, ok := err.(core.ErrorCode)
	if !ok {
		Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
		return
	}

	status := http.StatusBadRequest
	switch code {
	case core.ErrLoanNotFound:
		status = http.StatusNotFound
	case core.ErrActiveLoanExists, core.ErrCollateralLocked, core.ErrVersionConflict:
		status = http.StatusConflict
	case core.ErrOperationForbidden:
		status = http.StatusForbidden
	case core.ErrUnknown:
		status = http.StatusInternalServerError
	}

	Error(w, status, int(code), err)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"superapp-be/internal/apperr"
	"superapp-be/internal/auth"
	"superapp-be/internal/logger"
	"superapp-be/internal/session"
	"superapp-be/internal/utils"

	"go.uber.org/zap"
)

var errInvalidJSON = fmt.Errorf("%w: invalid json", apperr.ErrValidation)

type Handler struct {
	reg *session.Registry
	otp *auth.OTPService
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	utils.WriteJSON(w, code, v)
}

// writeError answers with the status of the error's category. Messages of
// unexpected errors are not leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.HTTPStatus(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		msg = http.StatusText(code)
	}
	utils.WriteJSONError(w, msg, code)
}

// decode reads a JSON body into v. An empty body leaves v untouched when
// optional is set.
func decode(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return errInvalidJSON
	}
	return nil
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	s, err := h.reg.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return s, true
}

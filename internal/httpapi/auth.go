package httpapi

import (
	"net/http"

	"superapp-be/internal/utils"
)

type otpRequest struct {
	Phone string `json:"phone"`
}

type otpVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	code, err := h.otp.Request(r.Context(), req.Phone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// no SMS gateway: the code goes back to the caller
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	token, userID, err := h.otp.Verify(r.Context(), req.Phone, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "user_id": userID})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": userID,
		"phone":   utils.GetUserPhoneFromContext(r.Context()),
	})
}

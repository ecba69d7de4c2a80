package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/http/middleware"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

// AccountHandler exposes registration, verification, login and profile routes.
type AccountHandler struct {
	registration *usecase.RegistrationUsecase
	verification *usecase.VerificationUsecase
	auth         *usecase.AuthUsecase
	logger       *zap.Logger
}

func NewAccountHandler(
	registration *usecase.RegistrationUsecase,
	verification *usecase.VerificationUsecase,
	auth *usecase.AuthUsecase,
	logger *zap.Logger,
) *AccountHandler {
	return &AccountHandler{
		registration: registration,
		verification: verification,
		auth:         auth,
		logger:       logger.Named("AccountHandler"),
	}
}

// accountResponse is the outward shape of an account. Password and token
// digests never leave the service.
type accountResponse struct {
	ID            string `json:"id"`
	Role          string `json:"role"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	IsActive      bool   `json:"is_active"`
	EmailVerified bool   `json:"email_verified"`

	IdentityStatus       string  `json:"identity_status,omitempty"`
	NationalID           string  `json:"national_id,omitempty"`
	NationalIDCandidate  string  `json:"national_id_candidate,omitempty"`
	NationalIDConfidence float64 `json:"national_id_confidence,omitempty"`
	ContractorStatus     string  `json:"contractor_status,omitempty"`
}

func toAccountResponse(acct entity.Account) accountResponse {
	resp := accountResponse{
		ID:            acct.AccountID(),
		Role:          string(acct.AccountRole()),
		Name:          acct.AccountName(),
		Email:         acct.AccountEmail(),
		Phone:         acct.AccountPhone(),
		IsActive:      acct.Activated(),
		EmailVerified: acct.Verified(),
	}
	switch a := acct.(type) {
	case *entity.Client:
		resp.IdentityStatus = string(a.IdentityStatus)
		resp.NationalID = a.NationalID
		resp.NationalIDCandidate = a.NationalIDCandidate
		resp.NationalIDConfidence = a.NationalIDConfidence
	case *entity.Contractor:
		resp.IdentityStatus = string(a.IdentityStatus)
		resp.NationalID = a.NationalID
		resp.NationalIDCandidate = a.NationalIDCandidate
		resp.NationalIDConfidence = a.NationalIDConfidence
		resp.ContractorStatus = string(a.ContractorStatus)
	}
	return resp
}

// Register handles the multipart registration form. The role comes from the
// URL, the documents come as file parts.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	role := entity.Role(chi.URLParam(r, "role"))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Warn("Failed to parse multipart registration form", zap.Error(err))
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	in := usecase.RegisterInput{
		Role:     role,
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
	}

	var err error
	if in.IdentityDocument, err = readFormFile(r, "identity_document"); err != nil {
		http.Error(w, "Could not read identity document", http.StatusBadRequest)
		return
	}
	if in.ContractorDocument, err = readFormFile(r, "contractor_document"); err != nil {
		http.Error(w, "Could not read contractor document", http.StatusBadRequest)
		return
	}
	if in.ProfileImage, err = readFormFile(r, "profile_image"); err != nil {
		http.Error(w, "Could not read profile image", http.StatusBadRequest)
		return
	}

	acct, err := h.registration.Register(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(acct))
}

// readFormFile returns nil when the part is absent; an absent upload is not an
// error at this layer.
func readFormFile(r *http.Request, field string) (*usecase.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	return &usecase.Document{
		FileName:    header.Filename,
		ContentType: contentTypeOf(header),
		Data:        data,
	}, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if err := h.verification.VerifyEmail(r.Context(), token); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}

func (h *AccountHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.verification.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "verification email sent"})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, acct, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"account": toAccountResponse(acct),
	})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "Account ID not found in token", http.StatusUnauthorized)
		return
	}
	if err := h.auth.Logout(r.Context(), accountID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "Account ID not found in token", http.StatusUnauthorized)
		return
	}
	role, _ := middleware.AccountRole(r.Context())

	acct, err := h.auth.Profile(r.Context(), role, accountID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.verification.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "reset code sent"})
}

func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.verification.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// Healthz reports liveness with the server time, useful when eyeballing logs.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

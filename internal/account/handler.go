package account

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
)

const guestHeader = "X-Guest-Id"

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/account/claim-guest", h.claimGuest)
}

// claimGuest needs both identities at once: the bearer token names the
// account, X-Guest-Id names the guest whose resumes move over.
func (h *Handler) claimGuest(c *gin.Context) {
	userID := strings.TrimSpace(middleware.UserIDFromContext(c))
	if userID == "" || middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "sign in to claim guest resumes", nil)
		return
	}
	guestID, issue := guestIDFromHeader(c)
	if issue != "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid "+guestHeader+" header",
			[]map[string]string{{"field": guestHeader, "issue": issue}})
		return
	}

	result, err := h.Svc.ClaimGuest(c.Request.Context(), middleware.GuestPrefix+guestID, userID)
	switch {
	case errors.Is(err, ErrInvalidClaim):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to move guest resumes", nil)
	default:
		respond.OK(c, result)
	}
}

func guestIDFromHeader(c *gin.Context) (string, string) {
	raw := strings.TrimSpace(c.GetHeader(guestHeader))
	if raw == "" {
		return "", "required"
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", "invalid"
	}
	return raw, ""
}

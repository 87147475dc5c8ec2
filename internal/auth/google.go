package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"resume-parser/internal/account"
	sharedauth "resume-parser/internal/shared/auth"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/users"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserStore records a Google sign-in and returns the local user.
type UserStore interface {
	UpsertFromGoogle(ctx context.Context, googleSub, email, name, avatarURL string) (users.User, error)
}

// GuestClaimer moves resumes uploaded as a guest onto the signed-in user.
type GuestClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, userID string) (account.ClaimResult, error)
}

// GoogleService signs users in with Google and hands the UI a session token.
// A guest id passed to start is remembered with the state, and the guest's
// resumes follow the user once the callback succeeds.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	stateTTL    time.Duration
	stateStore  *stateStore
	signer      *sharedauth.Signer
	users       UserStore
	userInfoURL string

	Guests GuestClaimer
}

// NewGoogleService builds a GoogleService.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, signer *sharedauth.Signer, store UserStore) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:  uiRedirect,
		stateTTL:    5 * time.Minute,
		stateStore:  newStateStore(),
		signer:      signer,
		users:       store,
		userInfoURL: userInfoURL,
	}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

// Configured reports whether Google credentials are present.
func (s *GoogleService) Configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.Configured() {
		respond.Error(c, http.StatusBadRequest, "auth_not_configured", "Google OAuth not configured", nil)
		return
	}
	guestID := c.Query("guestId")
	if guestID != "" {
		if _, err := uuid.Parse(guestID); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid guestId", nil)
			return
		}
	}

	state := uuid.NewString()
	s.stateStore.put(state, pendingLogin{expires: time.Now().Add(s.stateTTL), guestID: guestID})
	s.stateStore.prune(time.Now())

	url := s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, url)
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	pending, ok := s.stateStore.consume(state)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	userInfo, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	if userInfo.Sub == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}

	user, err := s.users.UpsertFromGoogle(ctx, userInfo.Sub, userInfo.Email, userInfo.Name, userInfo.Picture)
	if err != nil {
		telemetry.Error("auth.upsert_failed", map[string]any{"err": err.Error()})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to record user", nil)
		return
	}

	s.claimGuest(ctx, pending.guestID, user.ID)

	jwt, err := s.signer.Sign(sharedauth.Claims{
		Sub:     user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.AvatarURL,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}

	telemetry.Info("auth.login", map[string]any{"user_id": user.ID})
	c.Redirect(http.StatusFound, redirectURL)
}

// claimGuest never fails the login; the user can retry via /account/claim-guest.
func (s *GoogleService) claimGuest(ctx context.Context, guestID, userID string) {
	if guestID == "" || s.Guests == nil {
		return
	}
	if _, err := s.Guests.ClaimGuest(ctx, middleware.GuestPrefix+guestID, userID); err != nil {
		telemetry.Warn("auth.guest_claim_failed", map[string]any{"user_id": userID, "err": err.Error()})
	}
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}

	// Some responses use "id" instead of "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

type pendingLogin struct {
	expires time.Time
	guestID string
}

type stateStore struct {
	items map[string]pendingLogin
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]pendingLogin)}
}

func (s *stateStore) put(state string, p pendingLogin) {
	s.mu.Lock()
	s.items[state] = p
	s.mu.Unlock()
}

func (s *stateStore) prune(now time.Time) {
	s.mu.Lock()
	for k, p := range s.items {
		if now.After(p.expires) {
			delete(s.items, k)
		}
	}
	s.mu.Unlock()
}

// consume returns the pending login for state at most once.
func (s *stateStore) consume(state string) (pendingLogin, bool) {
	s.mu.Lock()
	p, ok := s.items[state]
	delete(s.items, state)
	s.mu.Unlock()
	if !ok || time.Now().After(p.expires) {
		return pendingLogin{}, false
	}
	return p, true
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

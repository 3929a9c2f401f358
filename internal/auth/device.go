package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultDeviceCodeURL  = "https://github.com/login/device/code"
	defaultAccessTokenURL = "https://github.com/login/oauth/access_token"
	defaultUserURL        = "https://api.github.com/user"

	oauthScope      = "repo read:user"
	deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"
)

// DeviceCode is GitHub's response to a device-code request.
type DeviceCode struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

// User is the authenticated GitHub user.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// Flow runs the OAuth device flow against GitHub.
type Flow struct {
	clientID   string
	httpClient *http.Client

	deviceCodeURL  string
	accessTokenURL string
	userURL        string
}

// NewFlow creates a device flow for the given OAuth app client ID. A nil
// httpClient falls back to a client with a 30 second timeout.
func NewFlow(clientID string, httpClient *http.Client) *Flow {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Flow{
		clientID:       clientID,
		httpClient:     httpClient,
		deviceCodeURL:  defaultDeviceCodeURL,
		accessTokenURL: defaultAccessTokenURL,
		userURL:        defaultUserURL,
	}
}

// SetEndpoints overrides the GitHub endpoints. Used by tests.
func (f *Flow) SetEndpoints(deviceCode, accessToken, user string) {
	f.deviceCodeURL = deviceCode
	f.accessTokenURL = accessToken
	f.userURL = user
}

// RequestCode starts the flow and returns the code the user must enter at
// the verification URL.
func (f *Flow) RequestCode(ctx context.Context) (*DeviceCode, error) {
	form := url.Values{"client_id": {f.clientID}, "scope": {oauthScope}}
	var code DeviceCode
	if err := f.postForm(ctx, f.deviceCodeURL, form, &code); err != nil {
		return nil, fmt.Errorf("request device code: %w", err)
	}
	if code.DeviceCode == "" || code.UserCode == "" {
		return nil, fmt.Errorf("request device code: empty response")
	}
	if code.Interval <= 0 {
		code.Interval = 5
	}
	return &code, nil
}

// WaitForToken polls the token endpoint until the user authorizes, the code
// expires, or ctx is cancelled. Cancellation is checked before and after
// every sleep. The slow_down response grows the poll interval by 5 seconds
// as GitHub requires.
func (f *Flow) WaitForToken(ctx context.Context, code *DeviceCode) (string, error) {
	interval := time.Duration(code.Interval) * time.Second
	form := url.Values{
		"client_id":   {f.clientID},
		"device_code": {code.DeviceCode},
		"grant_type":  {deviceGrantType},
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var resp accessTokenResponse
		if err := f.postForm(ctx, f.accessTokenURL, form, &resp); err != nil {
			return "", fmt.Errorf("poll for token: %w", err)
		}

		switch {
		case resp.AccessToken != "":
			return resp.AccessToken, nil
		case resp.Error == "authorization_pending", resp.Error == "":
			continue
		case resp.Error == "slow_down":
			interval += 5 * time.Second
		case resp.Error == "expired_token":
			return "", fmt.Errorf("device code expired, run login again")
		case resp.Error == "access_denied":
			return "", fmt.Errorf("authorization denied by user")
		default:
			return "", fmt.Errorf("token request failed: %s", resp.Error)
		}
	}
}

// FetchUser returns the login of the token's user.
func (f *Flow) FetchUser(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user: unexpected status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user.Login == "" {
		return nil, fmt.Errorf("fetch user: empty login")
	}
	return &user, nil
}

func (f *Flow) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

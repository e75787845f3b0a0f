// Package captcha checks reCAPTCHA v2 tokens against the siteverify
// endpoint.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultVerifyURL is Google's siteverify endpoint.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Doer sends an HTTP request.  *upstream.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Outcome is the upstream verdict for one token.
type Outcome struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname,omitempty"`
}

type Verifier struct {
	verifyURL string
	secret    string
	client    Doer
	logger    zerolog.Logger
}

func NewVerifier(verifyURL, secret string, client Doer, logger zerolog.Logger) *Verifier {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	return &Verifier{
		verifyURL: verifyURL,
		secret:    secret,
		client:    client,
		logger:    logger.With().Str("component", "captcha").Logger(),
	}
}

// Verify posts secret, token and remoteIP to the verify endpoint.  An error
// means no verdict could be obtained.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (Outcome, error) {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return Outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("siteverify status %d", resp.StatusCode)
	}
	var out Outcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Outcome{}, fmt.Errorf("decode siteverify: %w", err)
	}
	v.logger.Debug().Bool("success", out.Success).Strs("error_codes", out.ErrorCodes).Msg("captcha verified")
	return out, nil
}

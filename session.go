// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	// loginPath is the REST path of the operator login exchange
	loginPath = "portal/rest/login/operatorLogin"

	// logoutPath is the REST path of the remote session invalidation
	logoutPath = "portal/rest/logout"

	// sessionCookieName is the cookie the orchestrator issues on login
	sessionCookieName = "velocloud.session"

	// expiryLeeway treats a session as expired slightly before its actual
	// expiry, so a token is never attached to a call that would arrive
	// after the orchestrator discards it
	expiryLeeway = 30 * time.Second
)

// ProtocolAny marks a session token accepted by both wire protocols
const ProtocolAny Protocol = "any"

// Session is the authenticated state for one client. A Session value is
// immutable once published: refresh swaps in a complete replacement under
// the session mutex, so concurrent readers never observe a half-updated
// token/expiry pair.
type Session struct {
	// Token is the opaque session token
	Token string

	// IssuedAt is when the session was established
	IssuedAt time.Time

	// ExpiresAt is when the orchestrator discards the token; zero means the
	// credential kind never expires (API tokens)
	ExpiresAt time.Time

	// Affinity is the wire protocol the token is valid for
	Affinity Protocol
}

// expired reports whether the session should no longer be used, applying
// the expiry leeway
func (s *Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt.Add(-expiryLeeway))
}

// ValidFor reports whether the session token is accepted by the given
// wire protocol
func (s *Session) ValidFor(p Protocol) bool {
	return s.Affinity == ProtocolAny || s.Affinity == p
}

// refreshFlight is one in-progress session refresh. Callers that need a
// token while a refresh is in flight wait on done and share its outcome,
// success or failure, so N concurrent expired-token callers cause exactly
// one login exchange.
type refreshFlight struct {
	done    chan struct{}
	session *Session
	err     error
}

// Login performs the login exchange immediately and replaces any held
// session. Calling it is optional; the first operation logs in lazily.
//
// Returns *AuthError on failure: ReasonInvalidCredentials if the
// orchestrator rejected the credentials, ReasonUnreachable on network
// failure during the exchange.
func (c *Client) Login(ctx context.Context) error {
	session, err := c.login(ctx)
	if err != nil {
		return err
	}
	c.sessionMu.Lock()
	c.session = &session
	c.sessionMu.Unlock()
	return nil
}

// Token returns a valid (non-expired) session token for the given wire
// protocol, logging in or refreshing if necessary.
//
// Refresh is single-flight: if N callers request a token while one refresh
// is in progress, exactly one login exchange reaches the orchestrator and
// the other N-1 callers wait and share its outcome. A refresh aborted by
// its caller's deadline releases the flight, so later callers retry instead
// of deadlocking.
func (c *Client) Token(ctx context.Context, protocol Protocol) (string, error) {
	for {
		c.sessionMu.Lock()
		if s := c.session; s != nil && !s.expired(time.Now()) && s.ValidFor(protocol) {
			token := s.Token
			c.sessionMu.Unlock()
			return token, nil
		}

		if c.flight == nil {
			// No refresh in progress: this caller becomes the leader
			flight := &refreshFlight{done: make(chan struct{})}
			c.flight = flight
			c.sessionMu.Unlock()

			session, err := c.login(ctx)

			c.sessionMu.Lock()
			if err == nil {
				c.session = &session
				flight.session = &session
			} else {
				flight.err = err
			}
			c.flight = nil
			c.sessionMu.Unlock()
			close(flight.done)

			if err != nil {
				return "", err
			}
			return session.Token, nil
		}

		// A refresh is already in flight: wait for its outcome
		flight := c.flight
		c.sessionMu.Unlock()

		select {
		case <-flight.done:
			if flight.err != nil {
				return "", flight.err
			}
			return flight.session.Token, nil
		case <-ctx.Done():
			return "", &ClientError{Operation: "token", Err: ctx.Err()}
		}
	}
}

// Invalidate marks the held session stale, forcing the next Token call to
// refresh. The dispatcher calls this when the orchestrator reports an
// expired or invalid token.
func (c *Client) Invalidate() {
	c.sessionMu.Lock()
	c.session = nil
	c.sessionMu.Unlock()
}

// Logout invalidates the session on the orchestrator (best effort) and
// always clears local state, regardless of the remote outcome.
func (c *Client) Logout(ctx context.Context) error {
	c.sessionMu.Lock()
	session := c.session
	c.session = nil
	c.sessionMu.Unlock()

	if session == nil {
		return nil
	}

	_, err := c.exchange(ctx, "logout", wireRequest{
		path:   logoutPath,
		header: c.authHeader(session.Token),
	})
	if err != nil {
		c.logger.Warn(ctx, "remote logout failed, local session cleared anyway",
			"error", err.Error())
		return err
	}

	c.logger.Info(ctx, "session closed", "url", c.BaseURL)
	return nil
}

// login performs the credential exchange once. Password credentials go
// through the operator login endpoint and yield a cookie-scoped token; API
// tokens are long-lived and need no exchange.
func (c *Client) login(ctx context.Context) (Session, error) {
	now := time.Now()

	if c.apiToken != "" {
		// API tokens never expire and carry no remote exchange
		return Session{
			Token:    c.apiToken,
			IssuedAt: now,
			Affinity: ProtocolAny,
		}, nil
	}

	params := Body{}.
		Set("username", c.username).
		Set("password", c.password)
	body, err := params.String()
	if err != nil {
		return Session{}, &AuthError{Reason: ReasonInvalidCredentials, Err: err}
	}

	c.logger.Debug(ctx, "operator login", "url", c.BaseURL, "username", c.username)

	resp, err := c.exchange(ctx, "operatorLogin", wireRequest{path: loginPath, body: body})
	if err != nil {
		return Session{}, &AuthError{Reason: ReasonUnreachable, Err: err}
	}

	if resp.status >= 500 {
		return Session{}, &AuthError{
			Reason: ReasonUnreachable,
			Err:    fmt.Errorf("login returned HTTP %d", resp.status),
		}
	}
	if resp.status >= 400 {
		return Session{}, &AuthError{
			Reason: ReasonInvalidCredentials,
			Err:    fmt.Errorf("login returned HTTP %d", resp.status),
		}
	}
	if apiErr := identifyErrorBody(resp.body, resp.status); apiErr != nil {
		return Session{}, &AuthError{Reason: ReasonInvalidCredentials, Err: apiErr}
	}

	cookie := findSessionCookie(resp.cookies)
	if cookie == nil {
		return Session{}, &AuthError{
			Reason: ReasonInvalidCredentials,
			Err:    fmt.Errorf("login response carried no %s cookie", sessionCookieName),
		}
	}

	session := Session{
		Token:    cookie.Value,
		IssuedAt: now,
		Affinity: ProtocolAny,
	}
	if !cookie.Expires.IsZero() {
		session.ExpiresAt = cookie.Expires
	}

	c.logger.Info(ctx, "session established",
		"url", c.BaseURL,
		"expires", session.ExpiresAt)

	return session, nil
}

// findSessionCookie locates the orchestrator session cookie in a login
// response
func findSessionCookie(cookies []*http.Cookie) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

// authHeader builds the authentication header for a request. API tokens
// travel in the Authorization header; cookie-scoped session tokens travel
// as the session cookie.
func (c *Client) authHeader(token string) http.Header {
	header := http.Header{}
	if c.apiToken != "" {
		header.Set("Authorization", "Token "+token)
	} else {
		header.Set("Cookie", sessionCookieName+"="+token)
	}
	return header
}

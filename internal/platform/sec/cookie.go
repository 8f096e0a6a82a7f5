// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides identity primitives, password hashing and cookie signing.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, HMAC signing, role
// sets) from the domain logic. It has no dependency on other internal packages.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCookie is returned when a session cookie fails verification.
var ErrInvalidCookie = errors.New("sec: invalid session cookie")

// CookieSigner wraps session identifiers into HS256-signed tokens so that a
// client cannot forge or enumerate session ids.
type CookieSigner struct {
	secret []byte
	issuer string
}

// NewCookieSigner creates a signer for the given shared secret.
func NewCookieSigner(secret, issuer string) (*CookieSigner, error) {
	if secret == "" {
		return nil, errors.New("sec: empty session secret")
	}
	return &CookieSigner{secret: []byte(secret), issuer: issuer}, nil
}

// Sign returns the cookie value for sessionID.
func (signer *CookieSigner) Sign(sessionID string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       sessionID,
		Issuer:   signer.issuer,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signer.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify checks the signature of a cookie value and returns the session id it carries.
func (signer *CookieSigner) Verify(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return signer.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signer.issuer),
	)
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}

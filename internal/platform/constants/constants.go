// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, cookie names and upload limits that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie naming and storage prefixes.
  - Uploads: Profile picture limits.
*/
package constants

import "time"

// # Metadata

const (
	AppName = "getemall-api"
)

// Build metadata. Overridden at link time:
//
//	go build -ldflags "-X github.com/getemall/getemall/internal/platform/constants.AppVersion=1.2.0"
var (
	AppVersion   = "0.1.0-dev"
	BuildDate    = "unknown"
	BuildUser    = "unknown"
	BuildMachine = "unknown"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// ConnectionLivenessTimeout bounds the ping issued before a database connection is handed out.
	ConnectionLivenessTimeout = 1 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions & Authentication

const (
	// SessionCookieName carries the signed session identifier.
	SessionCookieName = "getemall_sid"

	// SessionIssuer is the 'iss' claim of the signed session cookie.
	SessionIssuer = "getemall"

	// AnonymousUser is the actor name logged for requests without a session user.
	AnonymousUser = "anonymous"
)

// # HTTP Headers & Media Types

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"

	MediaTypeJSON       = "application/json"
	MediaTypeMergePatch = "application/merge-patch+json"
	MediaTypeForm       = "application/x-www-form-urlencoded"
	MediaTypeMultipart  = "multipart/form-data"
)

// # Uploads

const (
	// DefaultUploadMaxBytes is the profile picture size limit (1 MB).
	DefaultUploadMaxBytes = 1024 * 1024

	// AvatarFormField is the multipart field name carrying the profile picture.
	AvatarFormField = "avatar"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes

const (
	RedisPrefixSession = "session:"
)

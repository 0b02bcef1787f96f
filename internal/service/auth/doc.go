// Package auth validates the bearer tokens that protect the API.
//
// Tokens are issued by the external authorization server. JWTService
// verifies them with either a shared HMAC secret (HS256) or the server's
// RSA public key (RS256), and checks the time, issuer and audience claims.
package auth

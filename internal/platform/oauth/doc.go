// Package oauth is the client side of the authorization-code flow against
// the external authorization server: it builds the authorize URL, exchanges
// codes for tokens at /oauth/token and fetches the user at /api/user.
package oauth

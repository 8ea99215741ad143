// Package auth implements the signed bearer-token lifecycle for a small
// multi-user service: claim construction, HS512 signing, expiry policy,
// refresh-token derivation, validation, and the mapping from validated
// claims to an authenticated principal with roles.
//
// Token lifecycle:
//   - TokenIssuer builds access tokens (subject "access_token") that embed a
//     freshly minted refresh token (subject "refresh_token") in their claims.
//     Expiry is always issuedAt + TTL; both TTLs come from configuration.
//   - TokenCodec owns the wire format: base64url(header).base64url(claims).
//     base64url(HMAC-SHA-512 signature). Decode checks structure and
//     signature only; temporal validity belongs to TokenValidator.
//   - TokenValidator layers expiry and purpose checks on top of the codec and
//     classifies every failure into a rich error (malformed, bad signature,
//     expired, wrong purpose).
//   - AuthenticationResolver turns validated claims into a Principal, always
//     re-reading the user record so role revocation applies to tokens that
//     are still outstanding.
//
// Request authentication lives in middleware/bearerware: it extracts a
// bearer token, runs validation and resolution, and attaches (or omits) the
// Principal without ever blocking the downstream chain. Role enforcement is
// a separate, per-endpoint middleware.
package auth

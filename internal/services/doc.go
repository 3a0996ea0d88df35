// Package services implements the HTTP clients for the recipe backend.
//
// # Gateway
//
// [Gateway] is the single point of outbound communication. It is a [resty.Client] configured with
// the backend base URL, JSON Accept/Content-Type headers and a request middleware that reads the
// current token from the injected [session.Store] and attaches it as a bearer credential.
// Requests without a session proceed unauthenticated; the backend decides what needs a login.
// Each request also carries a fresh X-Request-ID and, when configured, waits on a client-side
// rate limiter.
//
// The gateway never retries. Transport failures are returned as-is (wrapped), and non-2xx
// responses become [shared.APIError], which unwraps to a status sentinel:
//   - [shared.ErrUnauthorized] : 401
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrRateLimited] : 429
//   - [shared.ErrAPIRequest] : anything else
//
// # Endpoint Clients
//
//   - [AuthService] : auth/login, auth/register
//   - [RecipeService] : recipes/categories, recipes/category/{name}, meal lookup by id
//   - [FavoriteService] : recipes/like, recipes/liked, recipes/unlike/{id}
//
// List endpoints are decoded leniently: either a bare JSON array or an object wrapping the array
// under one of the usual keys (categories, meals, recipes, data).
package services

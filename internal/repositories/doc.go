// package repositories provides the SQLite persistence used alongside the remote API.
//
// [FavoriteRepository] mirrors the confirmed favorites set so it can be listed and exported
// without a network round trip. Rows carry a sequence for stable, insertion-ordered output.
package repositories

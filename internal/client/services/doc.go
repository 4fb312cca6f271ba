// Package services implements the user-facing flows on top of the backend
// API: reading the feed and profiles, and mutating posts and follows.
//
// Mutations are optimistic. The locally predicted result is published first,
// then confirmed by the server's answer or reverted if the request fails.
package services

// Package domain defines the core business entities of the mentoring
// marketplace: profiles, mentoring sessions with their status lifecycle,
// reviews, and the derived aggregate statistics cached on profiles.
package domain

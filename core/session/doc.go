// Package session keeps the live sections of recently edited experiences.
//
// A Registry maps an experience id to a value built on first use, typically a section
// that has already loaded its last-saved snapshot. It is an expirable LRU
// (github.com/hashicorp/golang-lru/v2/expirable): idle sessions expire and the least
// recently used ones are evicted when the registry is full.
package session

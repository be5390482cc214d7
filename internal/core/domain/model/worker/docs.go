// Package worker models field workers (cleaners) and their presence.
//
// A Worker is keyed by a UUID derived from its normalized phone number, so a
// presence ping from the same phone always lands on the same record. Workers are
// never deleted; going offline is just another presence write.
package worker

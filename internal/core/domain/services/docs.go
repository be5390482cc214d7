// Package services contains stateless domain services for dispatch.
//
//   - ProximityIndex ranks workers by great-circle distance to a job.
//   - Pricer turns a requested duration into a price in cents.
//
// Neither service touches storage; they operate on values handed to them and
// never mutate their inputs.
package services

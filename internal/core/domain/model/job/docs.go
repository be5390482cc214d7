// Package job provides the Job aggregate and its status state machine.
//
// A Job is a service request created in REQUESTED status. The only transition
// this service performs is REQUESTED -> ACCEPTED, fired once by the dispatch
// engine through a conditional write in storage. ACCEPTED is terminal here;
// later fulfilment stages live in other systems.
//
// Failing to find a worker ("no match") is an outcome of a dispatch attempt,
// not a status. The job stays REQUESTED and can be dispatched again.
package job

// Package submit posts order drafts to the order API.
//
// A Submitter performs exactly one request per call: there is no retry,
// backoff or queueing. Failures are reported as either a
// *schema.ValidationError (the API rejected individual fields) or a
// *TransportError (anything else), so callers can branch on the kind.
package submit

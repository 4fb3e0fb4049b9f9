// Package sink provides a small net/http handler that accepts form
// submissions the way the production webhook does: a POST whose body is a
// flat JSON object of strings, answered with {"received":true,"id":...}.
//
// It is meant for local development and tests. When configured with a
// contract schema, payloads that do not match are answered with 422 and the
// list of issues. The submission id is taken from the X-Submission-ID header
// when present.
package sink

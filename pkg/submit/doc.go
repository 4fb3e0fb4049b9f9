// Package submit collects the form values into a Payload and coordinates its
// delivery through a Transport.
//
// Concurrent submissions are not prevented: two calls to Submit issue two
// transport calls. No timeout is imposed beyond what ctx and the transport
// carry.
package submit

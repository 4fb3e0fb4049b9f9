// Package contract publishes the submission payload of a form definition as
// an OpenAPI 3 schema and document, and validates received payloads against
// it.
package contract

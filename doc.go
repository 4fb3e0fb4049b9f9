// Package formsteps wires the multi-step form runtime together: a definition
// (the embedded closed-deal form by default), the formatter registry, the
// visibility engine, the step validator, the summary builder and the
// submission coordinator, all driven by a sequencer.
//
//	seq, err := formsteps.New(formsteps.WithWebhook(url))
//	...
//	seq.SetField("cpf", "12345678901")
//	seq.Advance()
package formsteps

// Package format holds the value normalisation rules applied to a field after
// every change: digit masks for CPF, CNPJ and CEP numbers and word
// capitalisation for names and addresses. Rules are pure string functions
// looked up by name through a Registry.
package format

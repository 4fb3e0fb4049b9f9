// Package testsupport provides closed-deal fixtures shared by package tests.
package testsupport

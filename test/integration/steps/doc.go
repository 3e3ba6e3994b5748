// Package steps provides step definitions for BDD integration tests.
package steps

// Package doctor runs diagnostic checks for the container-use context
// server: whether settings parse and match the schema, whether the cu
// binary resolves, and which version of cu is installed.
package doctor

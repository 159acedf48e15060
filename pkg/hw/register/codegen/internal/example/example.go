// Package example holds register accessors generated by regc from the schemas
// used in the codegen tests, so that the generated code is compiled and
// exercised like any other package.
package example

//go:generate go run ../../../../../.. generate ../../../schema/testdata/rcc.yaml -p example -o rcc_regs.go
//go:generate go run ../../../../../.. generate ../../testdata/status.yaml -o status_regs.go

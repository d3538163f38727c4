// Package talker generates a box for an interface declared in another
// package, from inside a test package. See talker_test.go.
package talker

// Package collector is the client side of an application: it holds the
// form values, runs the form rules, and posts the payload to the intake
// endpoint. Validation failures never reach the network.
package collector

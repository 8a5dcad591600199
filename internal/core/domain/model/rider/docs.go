// Package rider contains the Rider aggregate: a delivery rider's identity,
// contact details and availability. Claiming and releasing riders goes through
// the dispatcher, which enforces the one-active-delivery-per-rider invariant.
package rider

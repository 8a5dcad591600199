// Package order contains the Order aggregate root and its state machines.
//
// The Order aggregate owns the canonical fulfilment status (pending through
// delivered/cancelled) and the independent payment status axis. All mutations
// go through validated methods that enforce the transition graph, keep the
// derived total consistent with line items, delivery fee and discount, and
// record exactly one domain event per successful transition.
//
// Same-status transition requests are deliberate no-ops so duplicate webhook
// deliveries replay safely without double-notifying customers.
package order

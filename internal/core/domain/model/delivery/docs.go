// Package delivery contains the delivery Record aggregate: the logistics
// sub-object tracking rider assignment and physical movement for one order.
//
// A Record runs its own state machine (unassigned through delivered/failed),
// constrained by the parent order's status at the completion edge. Distance
// and fee are frozen at assignment time; the tracking number is generated once
// and never reused.
package delivery

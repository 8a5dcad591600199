// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the fulfilment system. It
// implements workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - DeliveryPricer: derives a delivery fee from route distance and a tariff
//   - RiderDispatcher: coordinates delivery records, riders and parent orders
//     through assignment, movement and completion
//   - MessageCatalog: the closed set of customer message templates
package services
